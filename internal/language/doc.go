// Package language resolves user-supplied subtitle language input into a
// canonical BCP-47 tag and an English display name for prompt construction.
package language
