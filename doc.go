// Package folio tracks an investor's holdings from a list of buy and sell
// trades, manual price observations and per-symbol alert rules.
//
// The core functionalities include:
//   - Ledger: an owned value holding instrument masters, trades in entry
//     order, price series and alert configurations.
//   - Aggregation: folding trades into per (symbol, broker) positions with
//     weighted average cost and realized profit and loss.
//   - Reports: monthly and yearly gross sale proceeds.
//   - Alerts: target, stop-loss, 3σ band and trailing stop rules. Evaluating
//     alerts ratchets the persisted trailing stop high-water mark.
//   - Persistence: a single JSON blob in a key-value [Store], and a tagged-row
//     CSV format for backup and restore.
//
// Numbers are exact [decimal.Decimal] values. The current price of a symbol
// is always injected through a [PriceProvider].
package folio
