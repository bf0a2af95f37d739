// Package catalog supplies the ordered clip list shown by the feed. Clips
// come either from a YAML file on disk or from the built-in sample feed;
// fetching a catalog over the network is deliberately not supported.
package catalog
