// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes Fn fields to override behavior per
// test; unset functions fall back to the mock's default fields.
package mocks
