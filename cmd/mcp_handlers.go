package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/element-digitizer/element-digitizer/internal/capture"
	"github.com/element-digitizer/element-digitizer/internal/model"
	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/record"
	"github.com/element-digitizer/element-digitizer/internal/schema"
)

// reportToText serializes a report to YAML for an MCP response.
func reportToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal report: %v", err)
	}
	return string(b)
}

func (s *mcpServer) handleCaptureRegion(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.session == nil {
		return mcp.NewToolResultError(s.providerErr.Error()), nil
	}
	params := request.GetArguments()

	rect, err := model.ParseBBox(StringParam(params, "bbox", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.session.TryRun(capture.BBoxSource(rect))
	if errors.Is(err, capture.ErrBusy) {
		// Single capture in flight at a time; the trigger is dropped,
		// never queued.
		return mcp.NewToolResultError("capture already in progress; trigger dropped"), nil
	}
	if errors.Is(err, capture.ErrCancelled) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"selection %s rejected: must be at least %dx%d pixels",
			rect, capture.MinSelectionSize, capture.MinSelectionSize)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields := record.Fields{
		ElementID:           StringParam(params, "id", ""),
		ElementName:         StringParam(params, "name", ""),
		ElementType:         StringParam(params, "type", "button"),
		ParentElementID:     StringParam(params, "parent", ""),
		ModuleName:          StringParam(params, "module", cfg.DefaultModule),
		AnchorID:            StringParam(params, "anchor", ""),
		Tooltip:             StringParam(params, "tooltip", ""),
		DefaultAction:       StringParam(params, "action", "click"),
		ExpectedOutcomeDesc: StringParam(params, "outcome", ""),
		SoftwareVersion:     StringParam(params, "software-version", cfg.SoftwareVersion),
		Author:              StringParam(params, "author", cfg.Author),
		IsEnabled:           !BoolParam(params, "disabled", false),
		IsVisible:           !BoolParam(params, "invisible", false),
	}

	builder := record.NewBuilder(cfg.DatabaseRoot)
	rec := builder.Build(result, fields)

	overwrite := BoolParam(params, "overwrite", false)
	dryRun := BoolParam(params, "dry-run", false)

	report := output.SaveReport{
		ElementID:   rec.ElementID,
		Module:      rec.Module(),
		BoundingBox: rec.LocationInfo.BoundingBox,
		DryRun:      dryRun,
	}

	var validator schema.Validator
	if err := validator.Validate(rec, s.index, overwrite); err != nil {
		var vErr *schema.ValidationError
		if errors.As(err, &vErr) {
			report.Issues = vErr.Issues
			return mcp.NewToolResultError(reportToText(report)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	if dryRun {
		report.OK = true
		return mcp.NewToolResultText(reportToText(report)), nil
	}

	saved, err := s.repository.Save(rec, result.Image)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.index.Invalidate()

	report.OK = true
	report.JSONPath = saved.JSONPath
	report.ScreenshotPath = saved.ScreenshotPath
	return mcp.NewToolResultText(reportToText(report)), nil
}

func (s *mcpServer) handleGrabScreen(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.provider == nil {
		return mcp.NewToolResultError(s.providerErr.Error()), nil
	}
	params := request.GetArguments()

	var img image.Image
	var err error
	if bbox := StringParam(params, "bbox", ""); bbox != "" {
		var rect model.Rect
		rect, err = model.ParseBBox(bbox)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		img, err = s.provider.Grabber.CaptureRegion(rect)
	} else {
		img, err = s.provider.Grabber.CaptureScreen()
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

func (s *mcpServer) handleListElements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	if module := StringParam(params, "module", ""); module != "" {
		report, err := moduleReport(s.repository, module)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(reportToText(report)), nil
	}

	modules, err := s.repository.ListModules()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var reports []output.ListReport
	for _, m := range modules {
		report, err := moduleReport(s.repository, m)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		reports = append(reports, report)
	}
	return mcp.NewToolResultText(reportToText(reports)), nil
}

func (s *mcpServer) handleGetElement(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := StringParam(params, "id", "")
	module := StringParam(params, "module", cfg.DefaultModule)

	rec, err := s.repository.Load(module, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportToText(rec)), nil
}

func (s *mcpServer) handleCheckRecords(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := buildCheckReport(s.repository)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportToText(report)), nil
}
