package model

// Package model defines domain data structures shared by both tools: download
// tasks with their status enum, and the loosely-typed comment records and
// documents produced by yt-dlp's comment export.
