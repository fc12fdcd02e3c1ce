// Package catalog defines the catalog entry model and the HTTP client that
// retrieves the catalog from the remote content endpoint.
//
// Items are decoded strictly: every entry must carry the content_type, title,
// summary and link keys as JSON strings. Content types are free-form on the
// wire; NormalizeContentType maps user input onto the five known types.
package catalog
