// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package gsheets loads worksheets from a Google Sheets workbook into in-memory tables for inspection.

gsheets-loader authenticates with a service-account credential embedded in a local configuration
file, opens the configured workbook by URL and prints the row count, column names and a preview
of each requested worksheet.

gsheets-loader supports the following commands:

  - load-budget, to load the two staffing budget worksheets
  - load-pnl, to load the Raw_TruePnL, Ref_Department and Ref_Accounts worksheets
  - load, to load an arbitrary list of worksheets
  - version, to display the current version

The package itself defines the error kinds shared by the config, loader and CLI packages.
*/
package gsheets
