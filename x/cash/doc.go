/*
Package cash defines a simple wallet ledger.

Each address owns at most one wallet holding a balance denominated in the
smallest indivisible unit of value. The Controller interface exposes
balance queries and transfers, so other extensions can move funds without
binding to the storage layout.
*/
package cash
