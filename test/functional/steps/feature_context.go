package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"

	"upkeep-server/test/functional/driver"
)

type PaginatedResponse[T any] struct {
	Data       T `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

type tableData struct {
	Headers []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"headers"`
	Rows []struct {
		RecordID string `json:"record_id"`
		Cells    []struct {
			ColumnID string `json:"column_id"`
			Text     string `json:"text"`
		} `json:"cells"`
	} `json:"rows"`
}

type dialogData struct {
	ID        string              `json:"id"`
	State     string              `json:"state"`
	Mode      string              `json:"mode"`
	RecordID  string              `json:"record_id"`
	Values    map[string]any      `json:"values"`
	Errors    map[string][]string `json:"errors"`
	Submitted bool                `json:"submitted"`
	Record    *struct {
		ID     string         `json:"id"`
		Values map[string]any `json:"values"`
	} `json:"record"`
}

type FeatureContext struct {
	server       *driver.Server
	apiDriver    *driver.APIDriver
	response     *http.Response
	responseBody []byte
	table        tableData
	before       tableData
	dialog       dialogData
	createdID    string
	require      *require.Assertions
	t            godog.TestingT
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{}
}

func IsExternalMode() bool {
	return os.Getenv("EXTERNAL_API_URL") != ""
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	ctx.Given(`^the server is running$`, fc.theServerIsRunning)
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)

	ctx.Given(`^the "([^"]*)" table has (\d+) rows$`, fc.theTableHasRows)
	ctx.When(`^I load the "([^"]*)" table$`, fc.iLoadTheTable)
	ctx.Then(`^the table should have (\d+) rows$`, fc.theTableShouldHaveRows)
	ctx.Then(`^row (\d+) should show "([^"]*)" in the "([^"]*)" column$`, fc.rowShouldShowInTheColumn)
	ctx.Then(`^the other rows should be unchanged$`, fc.theOtherRowsShouldBeUnchanged)

	ctx.When(`^I open the create dialog for "([^"]*)"$`, fc.iOpenTheCreateDialogFor)
	ctx.When(`^I open the edit dialog for the "([^"]*)" row whose "([^"]*)" is "([^"]*)"$`, fc.iOpenTheEditDialogForTheRowWhose)
	ctx.When(`^I set "([^"]*)" to "([^"]*)"$`, fc.iSetTo)
	ctx.When(`^I submit the dialog$`, fc.iSubmitTheDialog)
	ctx.When(`^I close the dialog$`, fc.iCloseTheDialog)
	ctx.Then(`^the dialog should be "([^"]*)"$`, fc.theDialogShouldBe)
	ctx.Then(`^the dialog field "([^"]*)" should be "([^"]*)"$`, fc.theDialogFieldShouldBe)
	ctx.Then(`^the dialog should show an error for "([^"]*)"$`, fc.theDialogShouldShowAnErrorFor)
	ctx.Then(`^the dialog should report a saved record$`, fc.theDialogShouldReportASavedRecord)

	ctx.When(`^I visit the page "([^"]*)"$`, fc.iVisitThePage)
	ctx.Then(`^I should be redirected to "([^"]*)"$`, fc.iShouldBeRedirectedTo)

	ctx.When(`^I export "([^"]*)"$`, fc.iExport)
	ctx.Then(`^the export should have (\d+) lines$`, fc.theExportShouldHaveLines)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)
		fc.reset()

		if IsExternalMode() {
			fc.apiDriver = driver.NewAPIDriver(os.Getenv("EXTERNAL_API_URL"))
			return ctx, nil
		}

		server, err := driver.StartServer(ctx)
		if err != nil {
			return ctx, err
		}
		fc.server = server
		fc.apiDriver = driver.NewAPIDriver(server.URL)
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if fc.server != nil {
			fc.server.Close()
			fc.server = nil
		}
		return ctx, err
	})
}

func (fc *FeatureContext) reset() {
	fc.response = nil
	fc.responseBody = nil
	fc.table = tableData{}
	fc.before = tableData{}
	fc.dialog = dialogData{}
	fc.createdID = ""
}

// capture reads and closes the body so later steps can inspect it.
func (fc *FeatureContext) capture(resp *http.Response, err error) error {
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fc.response = resp
	fc.responseBody = body
	return nil
}

func (fc *FeatureContext) decode(out any) {
	fc.require.NoError(json.Unmarshal(fc.responseBody, out), string(fc.responseBody))
}

func (fc *FeatureContext) theServerIsRunning() error {
	if err := fc.capture(fc.apiDriver.Healthz()); err != nil {
		return err
	}
	fc.require.Equal(http.StatusOK, fc.response.StatusCode)
	return nil
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.NotNil(fc.response)
	fc.require.Equal(code, fc.response.StatusCode, string(fc.responseBody))
	return nil
}

func (fc *FeatureContext) loadTable(entity string) (tableData, error) {
	if err := fc.capture(fc.apiDriver.Table(entity, 100)); err != nil {
		return tableData{}, err
	}
	if fc.response.StatusCode != http.StatusOK {
		return tableData{}, fmt.Errorf("loading %s table: %d %s", entity, fc.response.StatusCode, fc.responseBody)
	}
	var page PaginatedResponse[tableData]
	fc.decode(&page)
	return page.Data, nil
}
