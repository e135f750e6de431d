// Package simtrade simulates trading a single stock index over its daily
// price history.
//
// A Series holds the historical prices and answers date queries: exact
// prices, ranges, the previous or next trading day, the 52-week window and
// the moving average trend.
//
// An Engine trades on a Series. A player creates a GameSession, buys and
// sells shares at the close of the simulated date, and advances the date
// through the history until the game ends. Every operation returns a new
// GameSession and leaves its argument untouched, sessions can therefore be
// stored, compared and replayed freely.
//
// Amounts are decimals: money is rounded to 2 places and shares to 4 places
// before being used in any further computation, so that a previewed trade and
// the executed one are identical.
//
// Around this core, the package derives trading statistics, achievements and
// leaderboard rankings from ended games.
package simtrade
