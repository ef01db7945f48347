package testutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// FakeEngineScript stands in for ffmpeg. It looks at the input's base name
// (the argument after -i) to decide what to do:
//
//	*slow*   never finishes on its own (exec sleep, so the pid is the engine's)
//	*bad*    prints an ffmpeg-like error and exits 1
//	*silent* exits 1 without writing to stderr
//	*crash*  kills itself with SIGSEGV
//
// Anything else writes the output file (the last argument) and exits 0.
// The engine's pid is appended to $FAKE_ENGINE_PIDS when that is set.
const FakeEngineScript = `#!/bin/sh
in=""
out=""
prev=""
for a in "$@"; do
	if [ "$prev" = "-i" ]; then in="$a"; fi
	prev="$a"
	out="$a"
done
if [ -n "$FAKE_ENGINE_PIDS" ]; then echo $$ >> "$FAKE_ENGINE_PIDS"; fi
case "$(basename "$in")" in
	*slow*)
		exec sleep 30
		;;
	*bad*)
		echo "ffmpeg version 6.1 Copyright (c) 2000-2023 the FFmpeg developers" >&2
		echo "$in: Invalid data found when processing input" >&2
		echo "" >&2
		exit 1
		;;
	*silent*)
		exit 1
		;;
	*crash*)
		kill -SEGV $$
		;;
esac
echo "converted $in" > "$out"
exit 0
`

// WriteScript writes an executable /bin/sh script to dir/name
func WriteScript(dir, name, body string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create script directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		return "", fmt.Errorf("failed to write script %s: %w", path, err)
	}
	return path, nil
}
