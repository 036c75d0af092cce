// Package fixture builds the field error indication page. Selection widgets
// get validators that reject their seeded value; text widgets get a component
// error set directly. After Build every widget on the page shows an active
// error indicator.
package fixture
