// Package types defines the entities, interfaces, and standard errors shared
// by the momo storefront client: menu items, cart line items, profiles,
// orders, and the Store contract for local persistence.
package types
