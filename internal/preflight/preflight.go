package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"dashforge/internal/config"
	"dashforge/internal/deps"
)

// Result is the outcome of one preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is
// readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates all external tools for the given config. Both
// the status command and the run use this so the requirements list lives in
// one place. The packagers are individually optional; DetectPackager
// enforces that at least one exists before a run starts.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for encoding",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for media inspection",
		},
		{
			Name:        "Shaka Packager",
			Command:     deps.ShakaBinary,
			Description: "DASH segmentation (preferred backend)",
			Optional:    true,
		},
		{
			Name:        "MP4Box",
			Command:     deps.MP4BoxBinary,
			Description: "DASH segmentation (fallback backend)",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}

// CheckDirectories verifies access to every directory a run touches. The
// output and work directories may not exist yet; they are created at run
// start, so only the input directory is required here.
func CheckDirectories(cfg *config.Config) []Result {
	results := []Result{
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir),
	}
	for _, dir := range []struct{ name, path string }{
		{"Output directory", cfg.Paths.OutputDir},
		{"Work directory", cfg.Paths.WorkDir},
	} {
		if _, err := os.Stat(dir.path); os.IsNotExist(err) {
			results = append(results, Result{Name: dir.name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", dir.path)})
			continue
		}
		results = append(results, CheckDirectoryAccess(dir.name, dir.path))
	}
	return results
}
