/*
Package config manages configuration parsing and validation for pyarchive.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+ +---+--+    +---+--+  +---+--+
	| YAML | | HCL  |    | JSON |  | TOML |
	+------+ +------+    +------+  +------+

🎯 Purpose:
- Holds the source, archive and vault paths for a run
- Holds the ordered category rule table and the default category
- Picks a parser by file extension

🔄 Flow:
1. Read parses the file (or falls back to Default when it is missing)
2. ApplyDefaults fills optional fields
3. The CLI layers flag overrides on top
4. Validate normalizes paths and rejects unusable settings with ErrConfiguration

📝 Rules:
Rules are evaluated top to bottom and the first match wins, so narrow rules
belong above broad ones. When the rule table is left out entirely the built-in
keyword table and the "Utility" default category are used. A custom rule
table must set default_category itself.

🔍 Example:

	cfg, err := config.Read(ctx, ".pyarchive.yaml")
	if err != nil {
		return err
	}
	cfg.SourcePath = "/Users/me/Desktop"
	if err := cfg.Validate(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("fix %s\n", verr.Field)
		}
		return err
	}
*/
package config
