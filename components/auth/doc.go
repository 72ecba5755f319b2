// Package auth renders the login page.
package auth
