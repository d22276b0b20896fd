// Package reports handles citizen reports attached to disasters: submission
// and listing, image upload to the object store, and image verification.
//
// Verification never trusts a URL's extension. The fetched bytes are content
// sniffed first, and only real image content reaches the vision model; the
// model's verdict arrives already normalized to Verified, Rejected or
// Unknown by the gemini adapter.
package reports
