// Package arcmirror mirrors public document listings from a government
// archive into S3-compatible object storage. It scrapes a listing page
// into structured records, downloads and uploads the referenced files
// with size-based deduplication, and generates an HTML index of the
// stored objects.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// s3/, http/).
package arcmirror
