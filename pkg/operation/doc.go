/*
Package operation drives an archive run from scan to note.

	+-------------+
	|  Operation  |
	| (Pipeline)  |
	+------+------+
	       |
	+------+------+------+------+
	|      |      |      |      |
	scan classify place status note

🎯 Purpose:
- Lists candidate files in the source folder
- Classifies each one and resolves its archive path
- Copies (or moves) placed files and writes their vault notes
- Reports every outcome through the status reporter and console logger

🔄 Flow (per file, one at a time):
1. classify.Classify picks the category (first match wins, default otherwise)
2. placement.ResolveWithPolicy picks the final path or reports a duplicate
3. status.FileManager copies the file and writes the note
4. The outcome is tracked; a failure only ends the current file

🤝 Interfaces:
- Operation: anything the Runner can execute
- status.FileManager: every disk access goes through it
- status.StatusReporter: per-file outcomes and the run summary

📝 Notes:
Files are independent. A run interrupted between files leaves every placed
file complete, and rerunning it skips what is already archived.
*/
package operation
