// Package models defines the letshang data model: published event records,
// the editable field set shared with the draft, partial-update patches,
// image records and their keyspaces, and the page background catalogue.
package models
