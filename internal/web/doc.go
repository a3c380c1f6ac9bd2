// Package web serves the local HTML front end for the collection.
//
// The gin engine renders the collection with a ten-position star control,
// catalog search with add buttons, and forms for update, delete, reset, and
// clear. Every mutating route follows post/redirect/get and reports its
// outcome through a flash query parameter. Requests are logged through slog
// with a per-request correlation id.
package web
