// Package finbook implements a personal finance and investment book.
//
// A book records bank accounts, categorized income and expense flows, and
// investment projects (stocks, funds, precious metals, currencies) with their
// buy/sell/dividend records. From those records it derives per-project
// aggregates, money-weighted annualized returns (IRR) in both the project
// currency and the home currency, and consolidated balance and income
// reports across currencies.
//
// The book persists as a JSONL file: one typed entry per line, identified by
// a "command" discriminator. See DecodeBook and EncodeBook.
package finbook
