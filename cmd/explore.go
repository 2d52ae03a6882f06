package cmd

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	pio "github.com/hangxie/parquet-tools/io"

	"github.com/datatools-dev/parqscope/model"
)

// ExploreCmd is a kong command for explore
type ExploreCmd struct {
	URI   string `arg:"" predictor:"file" help:"URI of Parquet file."`
	Limit int    `short:"l" default:"1000" help:"Maximum number of rows to sample for browsing."`
	pio.ReadOption
}

// newFileContext opens the file and reads everything the explorer
// needs up front: metadata, schema tree, row group layout, and the
// row sample. The reader is closed before returning; queries go
// through their own engine.
func newFileContext(uri string, option pio.ReadOption, sampleLimit int) (*fileContext, error) {
	parquetReader, err := pio.NewParquetFileReader(uri, option)
	if err != nil {
		return nil, fmt.Errorf("failed to open [%s]: %w", uri, err)
	}
	defer func() {
		_ = parquetReader.PFile.Close()
	}()

	mr := model.NewParquetReader(parquetReader)
	fc := &fileContext{
		filePath:  uri,
		info:      mr.GetFileInfo(),
		schema:    mr.GetSchemaTree(),
		rowGroups: mr.GetAllRowGroupsInfo(),
	}
	fc.chunks = make([][]model.ColumnChunkInfo, len(fc.rowGroups))
	for i := range fc.rowGroups {
		chunks, err := mr.GetAllColumnChunksInfo(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read column chunks of row group %d: %w", i, err)
		}
		fc.chunks[i] = chunks
	}
	fc.sample, err = mr.ReadSample(sampleLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to sample rows: %w", err)
	}
	return fc, nil
}

// Run does actual explore job
func (c ExploreCmd) Run() error {
	ex := NewExplorer()

	modal := tview.NewModal().
		SetText(fmt.Sprintf("Opening file...\n%s\n\nPlease wait...\n\nPress ESC or Ctrl+C to cancel", c.URI)).
		SetTextColor(tcell.ColorYellow)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cancelled := false
	modal.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyCtrlC {
			cancelled = true
			cancel()
			ex.app.Stop()
			return nil
		}
		return event
	})
	ex.pages.AddPage("loading", modal, true, true)

	type result struct {
		fc  *fileContext
		err error
	}
	resultChan := make(chan result, 1)

	go func() {
		fc, err := newFileContext(c.URI, c.ReadOption, c.Limit)
		select {
		case <-ctx.Done():
		case resultChan <- result{fc: fc, err: err}:
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
		case res := <-resultChan:
			ex.app.QueueUpdateDraw(func() {
				if res.err != nil {
					errorModal := tview.NewModal().
						SetText(fmt.Sprintf("Error opening file:\n%v\n\nPress ESC to exit", res.err)).
						SetTextColor(tcell.ColorRed).
						AddButtons([]string{"Exit"}).
						SetDoneFunc(func(buttonIndex int, buttonLabel string) {
							ex.app.Stop()
						})
					ex.pages.AddPage("error", errorModal, true, true)
					ex.pages.SwitchToPage("error")
					return
				}
				ex.pages.RemovePage("loading")
				ex.activate(res.fc)
			})
		}
	}()

	err := ex.Run()
	if cancelled {
		return nil
	}
	return err
}
