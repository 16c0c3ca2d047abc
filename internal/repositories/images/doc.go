// Package images persists uploaded image assets, one Repository per
// keyspace (flyer images, background images).
//
// Two implementations exist:
//
//   - SQLRepository stores payload, filename, checksum and upload time in the
//     keyspace's own table (flyer_images, background_images).
//   - S3Repository stores the payload as an object under "{keyspace}/{id}"
//     and keeps filename, checksum and upload time in object metadata.
//
// Every record carries a blake2b-256 checksum of its payload. Get verifies
// it and reports a mismatch as common.ErrStorageFault; a missing id is
// common.ErrNotFound. Delete of a missing id is not an error.
package images
