// meta/meta.go
package meta

// MAX_TURNS is the number of moves after which a game is drawn.
const MAX_TURNS = 500

// MAX_DEPTH caps the iterative deepening of a search.
const MAX_DEPTH = 15

// TABLE_CAP is the number of transposition table entries kept before the table is cleared.
const TABLE_CAP = 50_000

// GO_ROUTINES defines the number of games played concurrently in a tournament.
const GO_ROUTINES = 4

// CONFIG_FILE is the configuration path relative to the XDG config directories.
const CONFIG_FILE = "hasami/config.json"
