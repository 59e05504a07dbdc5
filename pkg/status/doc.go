/*
Package status aggregates and presents the outcome of a replace run.

	+--------------+
	|   Records    |
	| (with        |
	|  outcomes)   |
	+------+-------+
	       |
	+------+-------+
	|   Summary    |
	| (counts)     |
	+------+-------+
	       |
	+------+-------+
	|  Formatting  |
	| (UI/UX)      |
	+--------------+

🎯 Purpose:
- Reduces per-record replace outcomes into success/ignored/error counts
- Tracks progress across the worker pool
- Formats records and summaries for terminal display

🔄 Flow:
1. The replace coordinator attaches an outcome to every included record
2. Summarize folds the records into a Summary
3. The CLI (or any front-end) renders the Summary and the failed records

⚡ Key Responsibilities:
- Outcome aggregation
- The missing-outcome defensive check
- Progress reporting
- Presentation formatting

📝 Design Philosophy:
Aggregation is deliberately separate from the replace pass itself: the
coordinator owns file rewrites and nothing else, and every consumer (batch
summary, results screen) reads the same Summary.
*/
package status
