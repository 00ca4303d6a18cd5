// Package scraper provides HTTP fetching and HTML parsing for exam schedule pages.
//
// The scraper package reads a saved or live exam schedule page and extracts one raw
// record per exam card: course code, exam type, the free-text date description and
// the room list. Date text is passed on unparsed, line breaks preserved, for the
// exam package to normalize. Missing card fields are reported as "N/A".
package scraper
