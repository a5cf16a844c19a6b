// Package models defines the core domain models for leasehold.
//
// # Invoicing
//
//   - Invoice: a billable charge issued against a property
//   - InvoiceSplit: one resident's share of an invoice
//   - Status: the read-time badge derived from paid flags and due dates
//
// Invoices and their splits are written together at creation time and
// never added to or removed afterwards. Paid flags only move from false
// to true; there is no way to un-pay a split or an invoice.
//
// # Directory
//
//   - Property: the owning property, managed by exactly one user
//   - Resident: a selectable party living at a property
//   - User: a login account (property manager or resident)
//
// # Design Principles
//
//  1. Money is always decimal.Decimal, never float64
//  2. Relationships are ID strings, not pointers
//  3. Status is derived, never stored
package models
