/*
Package engine runs file commands against the real filesystem.

	+-----------+     destructive     +--------------+
	|  Submit   | ------------------> | confirm.Gate |
	+-----+-----+                     +------+-------+
	      | safe                             | Confirm(token)
	      v                                  v
	+-----------------------------------------------+
	|                   execute                     |
	|  copier | trash.Store | os primitives | tab   |
	+-----------------------+-----------------------+
	                        |
	                        v
	          tab history / undo / log stream

🎯 Purpose:
  - Route commands through the two-stage confirmation gate when they can
    destroy or relocate data
  - Apply them with the copier, the trash store or plain os calls
  - Record applied commands on the target tab and keep undo/redo honest
  - Report every step to the user-visible log stream and to metrics

⚡ Concurrency:
Every public method holds the engine lock for its whole duration, so calls
from a UI goroutine and a Runner goroutine never interleave.

🔍 Example:

	eng, err := engine.NewFromConfig(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	_ = eng.Submit(ctx, command.DeleteFile{Path: "/tmp/a.txt"}, "")
	_ = eng.Approve(ctx)
	_ = eng.Confirm(ctx, "CONFIRM")
	eng.Restore(ctx)
*/
package engine
