// Package types defines the catalog entities, grid cells, configuration and
// standard errors shared by every giftgrid component.
package types
