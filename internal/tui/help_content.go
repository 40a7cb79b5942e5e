package tui

// Help content rendered with glamour into the help overlay.
const BrowserHelp = `
# TREENAV - Help & Usage Guide

## OVERVIEW
treenav browses a directory tree in place. Directories load lazily:
nothing below a folder is read until you open it.

## KEYBOARD SHORTCUTS

| Key | Description |
| --- | --- |
| ?            | Show / hide this help |
| q, ctrl+c    | Quit |
| j / Down     | Move selection down |
| k / Up       | Move selection up |
| g            | Jump to first entry |
| G            | Jump to last entry |
| l, Right, Enter | Open / close the selected directory |
| h, Left      | Close the selected directory, or its parent |
| s            | Cycle sort mode (dirs-first, files-first, alphabetical) |
| f            | Filter mode, then: |
|   f d        | ... toggle hiding closed directories |
|   f f        | ... toggle hiding files |
|   f .        | ... toggle hiding dotfiles |
| /            | Fuzzy-jump to a visible entry |
| p            | Toggle the file preview pane |

## FILTERS
Filters combine: an entry is shown only if no active filter hides it.
An open directory is always shown, even with the directory filter on --
you are inside it. Hiding an entry hides its whole subtree.

## NOTES
Unreadable directories simply open empty; check the log file for the
underlying error.

Press Esc or ? to close this help
`
