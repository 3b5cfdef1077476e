/*
Package operation implements the harvest pipeline.

	+-----------+     +----------+     +-----------+
	|  Scanner  | --> |  Harvest | --> |  Archive  |
	| (Discover)|     | (Classify)|    |  (Copy)   |
	+-----------+     +----+-----+     +-----------+
	                       |
	                  +----+-----+
	                  |  Stats   |
	                  | (Report) |
	                  +----------+

🎯 Purpose:
- Orchestrates one harvest run end to end
- Classifies each recent file as unique or duplicate by name
- Accumulates per-root and global statistics

🔄 Flow:
1. Create destination layout and seed the filename index
2. Discover backup directories per root, applying exclusion rules
3. Copy each recent file into output (unique) or duplicates (collision)
4. Emit the per-root breakdown and global summary

⚡ Key Responsibilities:
- Sequential, single-threaded execution
- Error tolerance: a failed copy is logged and skipped, never retried
- Periodic progress notifications (observability only)

📝 Design Philosophy:
The operation package owns control flow and counters only. Directory
discovery lives in scan, destination I/O in archive, rendering in stats.
A missing root or an unreadable directory degrades to an empty result;
the only fatal error is failing to create the destination layout.
*/
package operation
