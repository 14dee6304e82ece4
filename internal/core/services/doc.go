// Package services implements the driving ports: the ingest pipeline
// that loads extracted purchase records into the store, and the search
// service that answers code, name, and supplier lookups.
//
// Services depend only on domain types and driven ports; all
// infrastructure (SQLite, excelize) stays behind those interfaces.
package services
