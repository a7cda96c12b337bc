// Package sample ships a built-in template so the whole pipeline can be
// exercised without an upload. The text deliberately uses every
// placeholder shape: brackets, sigil-prefixed brackets, braces, and
// underscore blanks.
package sample

import "docfill/internal/docfile"

// Filename is the pseudo-filename the sample is parsed under.
const Filename = "sample-safe.txt"

// Text is a SAFE-style agreement fragment.
const Text = `SIMPLE AGREEMENT FOR FUTURE EQUITY

THIS CERTIFIES THAT in exchange for the payment by [Investor Name] (the "Investor") of $[Purchase Amount] (the "Purchase Amount") on or about [Date of Safe], [Company Name], a {State of Incorporation} corporation (the "Company"), issues to the Investor the right to certain shares of the Company's Capital Stock, subject to the terms described below.

The "Post-Money Valuation Cap" is $[Valuation Cap].

This Safe is governed by the laws of {Governing Law}, without regard to conflict of law principles.

Notices to the Investor shall be sent to [Investor Email].

COMPANY:

By: ____________
Name: [Signatory Name]
Title: [Signatory Title]

INVESTOR:

By: ____________
Name: [Investor Name]`

// New parses the sample into a fillable template. The sample is plain
// text, which cannot fail to parse.
func New() docfile.Template {
	t, _ := docfile.Open([]byte(Text), Filename)
	return t
}
