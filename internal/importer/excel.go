package importer

import "github.com/xuri/excelize/v2"

// ImportExcel imports the first sheet of a workbook.
func ImportExcel(path string) ImportResult {
	var result ImportResult

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.errorf("Cannot open Excel file: %v", err)
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.errorf("Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.errorf("Cannot read Excel data: %v", err)
		return result
	}
	if len(rows) == 0 {
		result.errorf("Sheet %q is empty", sheets[0])
		return result
	}
	return importRows(rows, "Row", result)
}
