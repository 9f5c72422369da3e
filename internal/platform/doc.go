package platform

// Package platform contains OS integration glue shared by both tools:
// filesystem helpers, leveled console logging and Netscape cookie files.
