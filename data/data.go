// Package data embeds the catalog, replacement-rule, and alias files
// that the legal-form and city-matcher packages load once at process
// start (spec §6 external interfaces).
package data

import _ "embed"

//go:embed legal_forms.json
var LegalFormsJSON []byte

//go:embed legal_form_replacements.csv
var LegalFormReplacementsCSV []byte

//go:embed addition_legal_forms.txt
var AdditionLegalFormsTXT []byte

//go:embed cityMappings.txt
var CityMappingsTXT []byte

//go:embed nobility-titles.txt
var NobilityTitlesTXT []byte

//go:embed titles.txt
var TitlesTXT []byte
