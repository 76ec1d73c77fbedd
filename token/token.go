// Copyright 2026 The Fleetops Search Planner Authors.
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

// Package token implements the Token Extractor (C5): deterministic,
// stateless recognizers that pull structured ids, part/serial numbers,
// attachment-class signals and vendor signals out of email metadata.
// Every recognizer here is a compiled regular expression; none carries
// cross-record state.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/fleetops/searchplanner/core"
)

// Attachment is the subset of attachment metadata the extractor needs.
type Attachment struct {
	Name string
}

// AttachmentSignals classifies attachment filenames into the three
// named classes plus an overflow bucket for anything unrecognized.
type AttachmentSignals struct {
	Procurement []string
	Service     []string
	Technical   []string
	Other       []string
}

// VendorSignals carries sender-domain and participant-hash information
// used by the linking ladder's vendor-affinity bonus (§4.14).
type VendorSignals struct {
	SenderDomain      string
	SenderHash        string
	IsPersonalDomain  bool
	ParticipantHashes []string
}

// Tokens is the full extraction result for one email (§4.5).
type Tokens struct {
	IDs               map[string][]string
	Parts             map[string][]string
	AttachmentSignals AttachmentSignals
	Vendor            VendorSignals
}

var idPatterns = map[string]*regexp.Regexp{
	"wo_id":      regexp.MustCompile(`(?i)\b(?:WO[-#]?|Work\s*Order[-#:\s]*)(\d{1,6})\b`),
	"po_id":      regexp.MustCompile(`(?i)\b(?:PO[-#]?|Purchase\s*Order[-#:\s]*)(\d{1,6})\b`),
	"eq_id":      regexp.MustCompile(`(?i)\b(?:EQ[-#]?)(\d{1,6})\b`),
	"fault_id":   regexp.MustCompile(`(?i)\b(?:FAULT[-#]?|Fault[-#:\s]*)(\d{1,6})\b`),
	"invoice_id": regexp.MustCompile(`(?i)\b(?:INV[-#]?|Invoice[-#:\s]*)(\d{1,10})\b`),
	"quote_id":   regexp.MustCompile(`(?i)\b(?:QU?[-#]?|Quote[-#:\s]*)(\d{1,10})\b`),
}

var partPatterns = map[string]*regexp.Regexp{
	"part_number":   regexp.MustCompile(`\b([A-Z]{2,4}-?\d{3,8}-?[A-Z0-9]{0,4})\b`),
	"serial_number": regexp.MustCompile(`(?i)\b(?:S/?N|Serial)[-:\s]*([A-Z0-9]{6,20})\b`),
	"oem_number":    regexp.MustCompile(`(?i)\b(?:OEM|Original)[-:\s]*([A-Z0-9-]{5,20})\b`),
}

var procurementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)quote|quotation|proforma|estimate`),
	regexp.MustCompile(`(?i)invoice|inv[-_]|billing`),
	regexp.MustCompile(`(?i)receipt|payment|confirmation`),
	regexp.MustCompile(`(?i)purchase[-_]?order|po[-_]`),
	regexp.MustCompile(`(?i)pricing|price[-_]?list|catalog`),
}

var servicePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)service[-_]?report|job[-_]?sheet|work[-_]?report`),
	regexp.MustCompile(`(?i)completion|sign[-_]?off|handover`),
	regexp.MustCompile(`(?i)certificate|cert[-_]|certification`),
	regexp.MustCompile(`(?i)inspection|survey|audit`),
}

var technicalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)manual|handbook|guide`),
	regexp.MustCompile(`(?i)datasheet|data[-_]?sheet|spec`),
	regexp.MustCompile(`(?i)drawing|diagram|schematic`),
}

var extensionFalsePositives = map[string]bool{
	"RE": true, "FW": true, "FWD": true, "PDF": true, "DOC": true, "DOCX": true,
	"XLS": true, "XLSX": true, "PNG": true, "JPG": true, "JPEG": true,
	"GIF": true, "ZIP": true, "RAR": true,
}

var personalDomains = map[string]bool{
	"gmail.com": true, "yahoo.com": true, "hotmail.com": true, "outlook.com": true,
	"icloud.com": true, "aol.com": true, "mail.com": true, "protonmail.com": true,
}

// idPriority is the precedence order PrimaryID walks when more than
// one id kind is present in a single message.
var idPriority = []string{"wo_id", "po_id", "fault_id", "eq_id", "quote_id", "invoice_id"}

// Extract runs every recognizer over one email's metadata (§4.5).
func Extract(subject, sender string, attachments []Attachment, participantHashes []string) Tokens {
	tokens := Tokens{
		IDs:   extractIDs(subject),
		Parts: extractParts(subject),
	}

	for _, att := range attachments {
		for kind, values := range extractParts(att.Name) {
			tokens.Parts[kind] = dedupAppend(tokens.Parts[kind], values...)
		}
	}

	tokens.AttachmentSignals = classifyAttachments(attachments)
	tokens.Vendor = extractVendorSignals(sender, participantHashes)
	return tokens
}

func extractIDs(text string) map[string][]string {
	out := make(map[string][]string)
	for kind, pattern := range idPatterns {
		matches := pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		var values []string
		for _, m := range matches {
			values = dedupAppend(values, m[1])
		}
		out[kind] = values
	}
	return out
}

func extractParts(text string) map[string][]string {
	out := make(map[string][]string)
	for kind, pattern := range partPatterns {
		matches := pattern.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		var values []string
		for _, m := range matches {
			if isFalsePositive(m[1], kind) {
				continue
			}
			values = dedupAppend(values, m[1])
		}
		if len(values) > 0 {
			out[kind] = values
		}
	}
	return out
}

func isFalsePositive(match, kind string) bool {
	if extensionFalsePositives[strings.ToUpper(match)] {
		return true
	}
	if kind == "serial_number" {
		hasLetter, hasDigit := false, false
		for _, r := range match {
			switch {
			case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
				hasLetter = true
			case r >= '0' && r <= '9':
				hasDigit = true
			}
		}
		if !hasLetter || !hasDigit {
			return true
		}
	}
	return false
}

func classifyAttachments(attachments []Attachment) AttachmentSignals {
	var signals AttachmentSignals
	for _, att := range attachments {
		if att.Name == "" {
			continue
		}
		switch {
		case matchesAny(procurementPatterns, att.Name):
			signals.Procurement = append(signals.Procurement, att.Name)
		case matchesAny(servicePatterns, att.Name):
			signals.Service = append(signals.Service, att.Name)
		case matchesAny(technicalPatterns, att.Name):
			signals.Technical = append(signals.Technical, att.Name)
		default:
			signals.Other = append(signals.Other, att.Name)
		}
	}
	return signals
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func extractVendorSignals(fromAddress string, participantHashes []string) VendorSignals {
	var signals VendorSignals
	if fromAddress != "" && strings.Contains(fromAddress, "@") {
		parts := strings.SplitN(fromAddress, "@", 2)
		domain := strings.ToLower(parts[1])
		signals.SenderDomain = domain
		signals.IsPersonalDomain = personalDomains[domain]

		sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(fromAddress))))
		signals.SenderHash = hex.EncodeToString(sum[:])
	}
	signals.ParticipantHashes = participantHashes
	return signals
}

func dedupAppend(existing []string, values ...string) []string {
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v] = true
	}
	for _, v := range values {
		if !seen[v] {
			existing = append(existing, v)
			seen[v] = true
		}
	}
	return existing
}

// PrimaryID returns the highest-priority id present in tokens, or false
// if none of the recognized id kinds matched. Priority: WO > PO > fault
// > equipment > quote > invoice.
func PrimaryID(tokens Tokens) (kind, value string, ok bool) {
	for _, kind := range idPriority {
		if values, present := tokens.IDs[kind]; present && len(values) > 0 {
			return kind, values[0], true
		}
	}
	return "", "", false
}

// HasProcurementSignal reports whether tokens indicate procurement
// activity: a PO/quote/invoice id, or a procurement-classified
// attachment.
func HasProcurementSignal(tokens Tokens) bool {
	for _, kind := range []string{"po_id", "quote_id", "invoice_id"} {
		if len(tokens.IDs[kind]) > 0 {
			return true
		}
	}
	return len(tokens.AttachmentSignals.Procurement) > 0
}

// HasServiceSignal reports whether tokens indicate service activity: a
// WO/fault id, or a service-classified attachment.
func HasServiceSignal(tokens Tokens) bool {
	for _, kind := range []string{"wo_id", "fault_id"} {
		if len(tokens.IDs[kind]) > 0 {
			return true
		}
	}
	return len(tokens.AttachmentSignals.Service) > 0
}

// idKindToEntityType maps a token id kind to the core.EntityType used
// by the rest of the pipeline. oem_number has no dedicated entity type
// in the closed set and is folded into PartNumber.
var idKindToEntityType = map[string]core.EntityType{
	"wo_id":         core.WONumber,
	"po_id":         core.PONumber,
	"fault_id":      core.FaultCode,
	"eq_id":         core.EquipmentCode,
	"part_number":   core.PartNumber,
	"oem_number":    core.PartNumber,
	"serial_number": core.SerialNumber,
}

// ExtractFromQuery adapts the email-metadata extractor to plain search
// query text (a supplement to §4.5 for the non-email search surface:
// the original distillation only wired this extractor to email
// ingestion, but the same id/part recognizers apply directly to a
// typed query string such as "WO-1042" or "part eng-0008-103").
func ExtractFromQuery(text string) []core.Entity {
	var entities []core.Entity
	for kind, values := range extractIDs(text) {
		et, ok := idKindToEntityType[kind]
		if !ok {
			continue
		}
		for _, v := range values {
			entities = append(entities, core.Entity{Type: et, RawValue: v, Strength: core.StrengthOf(et)})
		}
	}
	for kind, values := range extractParts(text) {
		et, ok := idKindToEntityType[kind]
		if !ok {
			continue
		}
		for _, v := range values {
			entities = append(entities, core.Entity{Type: et, RawValue: v, Strength: core.StrengthOf(et)})
		}
	}
	return entities
}
