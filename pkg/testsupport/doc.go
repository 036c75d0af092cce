// Package testsupport holds helpers shared by renderer and host tests:
// deterministic fixture pages and golden file utilities.
package testsupport
