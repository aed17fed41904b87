// Package assets provides the base print stylesheet and the document
// template catalog. Catalogs can be loaded from embedded files or from a
// custom directory carrying the same layout: a catalog.yaml manifest next to
// the template files it lists.
package assets
