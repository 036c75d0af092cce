// Package validation holds the validators fixture widgets attach. Failures are
// *InvalidValueError values whose Message is shown in the widget's error
// indicator.
package validation
