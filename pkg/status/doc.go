/*
Package status turns engine events into the words and numbers users read.

🎯 Purpose:
- Human readable byte counts (FormatBytes)
- Batch item / progress / speed-limit wording (FileFormatter)
- Console rows for batch results (FormatFileOperation)

The package is pure formatting: it never touches the filesystem and never
logs on its own. Callers decide where the strings go.
*/
package status
