// Package main is the entry point for apops, a rental property
// administration service: units, leases, metered billing, invoice
// generation and payment reconciliation.
package main

func main() {
	Execute()
}
