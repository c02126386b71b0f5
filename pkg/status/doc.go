/*
Package status owns disk access and per-file outcome tracking for pyarchive.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Outcomes|
	| (Storage) |           | (Report)|
	+-----------+           +---------+

🎯 Purpose:
- Answers "does this path exist?" for the placement resolver
- Copies archived files (keeping the source mtime) and writes notes atomically
- Records what happened to each source file: placed, skipped, failed, planned

🤝 Interfaces:
- FileManager: existence checks, copies, atomic writes
- StatusReporter: outcome tracking and progress
- FileFormatter: one-line messages for outcomes and progress

📝 Notes:
FileExists only reports false for a path that is genuinely missing. Any other
stat failure (permissions, a file where a directory should be) is returned as
an error so the caller can report the path as unavailable instead of writing
over it.
*/
package status
