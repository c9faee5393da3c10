// Package models defines domain entities for the cc2lc game mirror.
//
// The package contains two categories of types:
//
// 1. Value types describing how the source slices game history:
//   - [Month] : A calendar month of archived games, totally ordered
//   - [Outcome] : Terminal result of a game (white, black, draw)
//
// 2. Records exchanged with the services and the store:
//   - [RawGame] : A game as returned by the chess.com archive endpoint
//   - [Game] : A fully resolved game record, including its lichess URL,
//     owned by the store once recorded
//
// [Month] values are immutable and compared with [CompareMonths], which orders
// by year first and only consults the month when the years are equal.
package models
