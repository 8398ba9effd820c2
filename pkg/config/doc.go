/*
Package config loads the engine settings from YAML, JSON or HCL.

🎯 Purpose:
- Pick a parser by file extension
- Fill in defaults and reject values the engine cannot use
- Hand typed option structs to the copier and trash packages

🔍 Example:

	cfg, err := config.LoadOrDefault(ctx, "filepane.hcl")
	if err != nil {
		return err
	}
	c := copier.New(logger, cfg.CopierOptions())

An HCL file may refer to the home directory:

	trash_mode = "dir"
	trash_dir  = "${home}/.cache/filepane/trash"
	ignore     = [".git", "*.tmp"]
*/
package config
