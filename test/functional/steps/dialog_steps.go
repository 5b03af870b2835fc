package steps

import (
	"net/http"
	"strings"
)

func (fc *FeatureContext) iOpenTheCreateDialogFor(entity string) error {
	if err := fc.capture(fc.apiDriver.OpenDialog(entity, "")); err != nil {
		return err
	}
	fc.require.Equal(http.StatusCreated, fc.response.StatusCode, string(fc.responseBody))
	fc.decode(&fc.dialog)
	return nil
}

func (fc *FeatureContext) iOpenTheEditDialogForTheRowWhose(entity, column, text string) error {
	id, err := fc.rowWhere(fc.table, column, text)
	if err != nil {
		return err
	}
	if err := fc.capture(fc.apiDriver.OpenDialog(entity, id)); err != nil {
		return err
	}
	fc.require.Equal(http.StatusCreated, fc.response.StatusCode, string(fc.responseBody))
	fc.decode(&fc.dialog)
	return nil
}

func (fc *FeatureContext) iSetTo(field, value string) error {
	if err := fc.capture(fc.apiDriver.ChangeDialog(fc.dialog.ID, map[string]any{field: value})); err != nil {
		return err
	}
	if fc.response.StatusCode == http.StatusOK {
		fc.decode(&fc.dialog)
	}
	return nil
}

func (fc *FeatureContext) iSubmitTheDialog() error {
	if err := fc.capture(fc.apiDriver.SubmitDialog(fc.dialog.ID)); err != nil {
		return err
	}
	switch fc.response.StatusCode {
	case http.StatusOK, http.StatusUnprocessableEntity:
		fc.decode(&fc.dialog)
	}
	if fc.dialog.Record != nil {
		fc.createdID = fc.dialog.Record.ID
	}
	return nil
}

func (fc *FeatureContext) iCloseTheDialog() error {
	if err := fc.capture(fc.apiDriver.CloseDialog(fc.dialog.ID)); err != nil {
		return err
	}
	fc.require.Equal(http.StatusNoContent, fc.response.StatusCode, string(fc.responseBody))
	return nil
}

func (fc *FeatureContext) theDialogShouldBe(state string) error {
	fc.require.Equal(state, fc.dialog.State)
	return nil
}

func (fc *FeatureContext) theDialogFieldShouldBe(field, value string) error {
	fc.require.Contains(fc.dialog.Values, field)
	fc.require.Equal(value, fc.dialog.Values[field])
	return nil
}

func (fc *FeatureContext) theDialogShouldShowAnErrorFor(field string) error {
	fc.require.NotEmpty(fc.dialog.Errors[field], "errors: %v", fc.dialog.Errors)
	fc.require.False(fc.dialog.Submitted)
	return nil
}

func (fc *FeatureContext) theDialogShouldReportASavedRecord() error {
	fc.require.True(fc.dialog.Submitted)
	fc.require.NotNil(fc.dialog.Record)
	fc.require.NotEmpty(fc.createdID)
	return nil
}

func (fc *FeatureContext) iVisitThePage(path string) error {
	return fc.capture(fc.apiDriver.ResolvePage(path))
}

func (fc *FeatureContext) iShouldBeRedirectedTo(path string) error {
	fc.require.Equal(http.StatusSeeOther, fc.response.StatusCode, string(fc.responseBody))
	fc.require.Equal("/v1/pages"+path, fc.response.Header.Get("Location"))
	return nil
}

func (fc *FeatureContext) iExport(entity string) error {
	return fc.capture(fc.apiDriver.Export(entity))
}

func (fc *FeatureContext) theExportShouldHaveLines(lines int) error {
	fc.require.Equal(http.StatusOK, fc.response.StatusCode)
	fc.require.Len(strings.Split(strings.TrimSpace(string(fc.responseBody)), "\n"), lines)
	return nil
}
