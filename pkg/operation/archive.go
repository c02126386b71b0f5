// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/pyarchive/pkg/log"
	"github.com/walteh/pyarchive/pkg/note"
	"github.com/walteh/pyarchive/pkg/placement"
	"github.com/walteh/pyarchive/pkg/scan"
	"github.com/walteh/pyarchive/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewArchiveOperation creates the scan, place and note pipeline
func NewArchiveOperation(opts Options) (Operation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, err
	}
	return &archiveOperation{BaseOperation: base}, nil
}

// 📦 archiveOperation archives every candidate in the source folder
type archiveOperation struct {
	BaseOperation
}

// 🏃 Execute runs the archive pipeline
func (op *archiveOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	console := log.FromContext(ctx)

	console.StartRun(ctx, log.RunOperation{
		Source:  op.Config.SourcePath,
		Archive: op.Config.ArchivePath,
		Vault:   op.Config.VaultPath,
		DryRun:  op.DryRun,
	})
	defer console.EndRun(ctx)

	if !op.DryRun {
		op.ensureDirectories(ctx)
	}

	files, err := op.scan(ctx)
	if err != nil {
		return errors.Errorf("scanning source: %w", err)
	}
	if len(files) == 0 {
		console.Warning("No Python files found!")
		return nil
	}

	logger.Debug().Int("files", len(files)).Msg("found candidate files")

	op.Status.StartOperation(ctx, len(files))
	defer op.Status.FinishOperation(ctx)

	for i := range files {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("archive run interrupted after %d of %d files: %w", i, len(files), err)
		}
		op.report(ctx, op.processFile(ctx, &files[i]))
		op.Status.UpdateProgress(ctx, i+1)
	}

	op.summarize(ctx)
	return nil
}

// 📁 ensureDirectories creates the archive root and one note folder per category.
// Failures are reported and left for the per-file steps to surface.
func (op *archiveOperation) ensureDirectories(ctx context.Context) {
	dirs := []string{op.Config.ArchivePath}
	for _, category := range op.Config.Categories() {
		dirs = append(dirs, op.Config.NoteDir(category))
	}

	for _, dir := range dirs {
		if err := op.Files.CreateDir(ctx, dir); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("could not create directory")
			log.FromContext(ctx).Warningf("could not create %s: %v", dir, err)
		}
	}
}

// 📄 processFile classifies, places and documents one file
func (op *archiveOperation) processFile(ctx context.Context, d *scan.FileDescriptor) status.FileInfo {
	logger := zerolog.Ctx(ctx).With().Str("file", d.Name).Logger()

	info := status.FileInfo{
		Name: d.Name,
		Size: d.SizeBytes,
	}

	result, decision, err := op.resolve(ctx, d)
	info.Category = result.Category
	if err != nil {
		info.Status = status.StatusFailed
		info.Error = err
		return info
	}
	info.Destination = decision.FinalPath

	logger.Debug().
		Str("category", result.Category).
		Int("rule", result.RuleIndex).
		Str("matched_by", result.MatchedBy).
		Stringer("action", decision.Action).
		Str("final_path", decision.FinalPath).
		Msg("resolved placement")

	if decision.Action == placement.ActionSkipDuplicate {
		info.Status = status.StatusSkipped
		return info
	}

	if op.DryRun {
		info.Status = status.StatusPlanned
		return info
	}

	notePath, err := op.place(ctx, d, result.Category, decision.FinalPath)
	if err != nil {
		info.Status = status.StatusFailed
		info.Error = err
		return info
	}

	info.NotePath = notePath
	info.Status = status.StatusPlaced
	return info
}

// 🚚 place copies d to finalPath and writes its note, returning the note path.
// Nothing is left in the archive unless both the copy and the note exist, so a
// failed file is placed again by the next run instead of being skipped.
func (op *archiveOperation) place(ctx context.Context, d *scan.FileDescriptor, category, finalPath string) (string, error) {
	content, err := op.Files.ReadFile(ctx, d.Path)
	if err != nil {
		return "", placement.Unavailable(d.Path, err)
	}

	archivedName := filepath.Base(finalPath)
	notePath, err := op.notePath(ctx, category, archivedName)
	if err != nil {
		return "", err
	}

	doc, err := note.Render(note.Note{
		Name:        strings.TrimSuffix(archivedName, filepath.Ext(archivedName)),
		FileName:    archivedName,
		Category:    category,
		ArchivePath: finalPath,
		Size:        d.SizeBytes,
		Source:      note.DecodeSource(content),
		Created:     op.Now(),
	})
	if err != nil {
		return "", errors.Errorf("rendering note: %w", err)
	}

	if err := op.Files.CopyFile(ctx, d.Path, finalPath); err != nil {
		return "", placement.Unavailable(finalPath, err)
	}

	if err := op.Files.WriteFileAtomic(ctx, notePath, doc); err != nil {
		op.rollback(ctx, finalPath)
		return "", placement.Unavailable(notePath, err)
	}

	if op.Config.RemoveSource {
		if err := op.Files.DeleteFile(ctx, d.Path); err != nil {
			return "", placement.Unavailable(d.Path, err)
		}
	}

	return notePath, nil
}

// 🗒️ notePath picks a free note path for archivedName. "<stem>.md" is
// preferred; when it is taken (an edited note, or helper.py next to helper.PY)
// the archived name is kept whole, "<name>.md", followed by " - dupN" siblings.
func (op *archiveOperation) notePath(ctx context.Context, category, archivedName string) (string, error) {
	exists := func(path string) (bool, error) {
		return op.Files.FileExists(ctx, path)
	}

	root := op.Config.NoteRoot()
	preferred := placement.CandidatePath(root, category, note.FileName(archivedName))
	taken, err := exists(preferred)
	if err != nil {
		return "", placement.Unavailable(preferred, err)
	}
	if !taken {
		return preferred, nil
	}

	decision, err := placement.ResolveWithPolicy(root, category, archivedName+".md", exists, placement.PolicySuffix)
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Debug().
		Str("taken", preferred).
		Str("note", decision.FinalPath).
		Msg("note name already used")
	return decision.FinalPath, nil
}

// ↩️ rollback removes an archive copy whose note could not be written
func (op *archiveOperation) rollback(ctx context.Context, finalPath string) {
	if err := op.Files.DeleteFile(ctx, finalPath); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", finalPath).Msg("could not remove archive copy")
		log.FromContext(ctx).Warningf("could not remove %s after a failed note: %v", finalPath, err)
	}
}

// 📊 summarize prints the run totals
func (op *archiveOperation) summarize(ctx context.Context) {
	console := log.FromContext(ctx)
	summary := op.Status.Summary(ctx)

	if summary.Placed == 0 && summary.Planned == 0 && summary.Failed == 0 {
		console.Warning("No new Python files to process!")
	}

	console.LogNewline()
	if op.DryRun {
		console.Infof("%d planned, %d skipped, %d failed", summary.Planned, summary.Skipped, summary.Failed)
		return
	}
	if summary.Failed > 0 {
		console.Warningf("%d archived, %d skipped, %d failed", summary.Placed, summary.Skipped, summary.Failed)
		return
	}
	console.Successf("%d archived, %d skipped, %d failed", summary.Placed, summary.Skipped, summary.Failed)
}
