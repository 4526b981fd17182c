// Package repos builds the Cobra commands that inspect and manipulate a single
// git checkout: commit log queries, checkouts by hash or date, blame, diffs,
// branch and shortlog summaries, clones and Checkstyle runs.
package repos
