// Package tools describes CRM operations as tools for the hosted agent runtime.
//
// Every Definition names one HTTP operation and carries JSON Schemas derived from
// the request structs the handlers bind.
package tools
