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

package registry

import "github.com/fleetops/searchplanner/core"

// DefaultTables returns the built-in table capability declarations for
// the ten backing tables named in §2 (parts catalog, inventory,
// equipment, faults, work orders, purchase orders, documents, graph
// nodes, symptom aliases, emails). Production deployments may instead
// call LoadYAML with a site-specific declaration file; this set exists
// so the pipeline is runnable and testable out of the box.
func DefaultTables() []core.TableCapability {
	return []core.TableCapability{
		partsTable(),
		inventoryTable(),
		equipmentTable(),
		faultsTable(),
		workOrdersTable(),
		purchaseOrdersTable(),
		documentsTable(),
		graphNodesTable(),
		symptomAliasesTable(),
		emailsTable(),
	}
}

func partsTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_parts",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "part_number", "name", "manufacturer", "location"},
		DefaultLimit:  20,
		RequiredFilters: []string{"yacht_id"},
		Columns: map[string]core.ColumnCapability{
			"part_number": {
				Name: "part_number", Datatype: "text",
				Operators:           []core.Operator{core.OpExact, core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.PartNumber},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"name": {
				Name: "name", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.PartName},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"manufacturer": {
				Name: "manufacturer", Datatype: "text",
				Operators:       []core.Operator{core.OpILike},
				EntityTypes:     []core.EntityType{core.Manufacturer},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				SelectDefault:   true,
			},
		},
	}
}

func inventoryTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_inventory",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "part_number", "quantity", "location"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"part_number": {
				Name: "part_number", Datatype: "text",
				Operators:           []core.Operator{core.OpExact, core.OpILike},
				EntityTypes:         []core.EntityType{core.PartNumber},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"location": {
				Name: "location", Datatype: "text",
				Operators:       []core.Operator{core.OpILike},
				EntityTypes:     []core.EntityType{core.Location},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				SelectDefault:   true,
			},
		},
	}
}

func equipmentTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_equipment",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "code", "name", "manufacturer", "location"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"code": {
				Name: "code", Datatype: "text",
				Operators:           []core.Operator{core.OpExact, core.OpILike},
				EntityTypes:         []core.EntityType{core.EquipmentCode},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"name": {
				Name: "name", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.EquipmentName},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"serial_number": {
				Name: "serial_number", Datatype: "text",
				Operators:           []core.Operator{core.OpExact},
				EntityTypes:         []core.EntityType{core.SerialNumber},
				IsolatedOK:          true,
				SelectDefault:       false,
				PrimarySemanticHome: true,
			},
			"manufacturer": {
				Name: "manufacturer", Datatype: "text",
				Operators:       []core.Operator{core.OpILike},
				EntityTypes:     []core.EntityType{core.Manufacturer},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				SelectDefault:   true,
			},
		},
	}
}

func faultsTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_faults",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "fault_code", "symptom", "equipment_id"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"fault_code": {
				Name: "fault_code", Datatype: "text",
				Operators:           []core.Operator{core.OpExact},
				EntityTypes:         []core.EntityType{core.FaultCode},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"symptom": {
				Name: "symptom", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.Symptom},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
		},
	}
}

func workOrdersTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_work_orders",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "wo_number", "title", "status", "vendor_email"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"wo_number": {
				Name: "wo_number", Datatype: "text",
				Operators:           []core.Operator{core.OpExact, core.OpIn},
				EntityTypes:         []core.EntityType{core.WONumber},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"title": {
				Name: "title", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.FreeText},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
		},
	}
}

func purchaseOrdersTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_purchase_orders",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "po_number", "vendor_name", "status"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"po_number": {
				Name: "po_number", Datatype: "text",
				Operators:           []core.Operator{core.OpExact},
				EntityTypes:         []core.EntityType{core.PONumber},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"vendor_name": {
				Name: "vendor_name", Datatype: "text",
				Operators:       []core.Operator{core.OpILike},
				EntityTypes:     []core.EntityType{core.SupplierName},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				SelectDefault:   true,
			},
		},
	}
}

func documentsTable() core.TableCapability {
	return core.TableCapability{
		Name:          "pms_documents",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "title", "tags", "equipment_id"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"title": {
				Name: "title", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.FreeText, core.EquipmentName},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"tags": {
				Name: "tags", Datatype: "text[]",
				Operators:       []core.Operator{core.OpArrayAnyILike},
				EntityTypes:     []core.EntityType{core.FreeText},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				SelectDefault:   true,
			},
		},
	}
}

func graphNodesTable() core.TableCapability {
	return core.TableCapability{
		Name:          "graph_nodes",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "object_type", "label", "metadata"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"label": {
				Name: "label", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.EquipmentName, core.PartName, core.FreeText},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"metadata": {
				Name: "metadata", Datatype: "jsonb",
				Operators:       []core.Operator{core.OpJSONPathILike},
				EntityTypes:     []core.EntityType{core.FreeText},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				JSONKeys:        []string{"notes", "description"},
				SelectDefault:   false,
			},
		},
	}
}

func symptomAliasesTable() core.TableCapability {
	return core.TableCapability{
		Name:          "symptom_aliases",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "alias", "fault_code"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"alias": {
				Name: "alias", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.Symptom},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
		},
	}
}

func emailsTable() core.TableCapability {
	return core.TableCapability{
		Name:          "emails",
		YachtIDColumn: "yacht_id",
		PrimaryKey:    "id",
		DefaultSelect: []string{"id", "subject", "sender", "thread_id"},
		DefaultLimit:  20,
		Columns: map[string]core.ColumnCapability{
			"subject": {
				Name: "subject", Datatype: "text",
				Operators:           []core.Operator{core.OpILike, core.OpTrigram},
				EntityTypes:         []core.EntityType{core.FreeText},
				IsolatedOK:          true,
				SelectDefault:       true,
				PrimarySemanticHome: true,
			},
			"sender": {
				Name: "sender", Datatype: "text",
				Operators:       []core.Operator{core.OpExact, core.OpILike},
				EntityTypes:     []core.EntityType{core.SupplierName},
				IsolatedOK:      false,
				ConjunctionOnly: true,
				SelectDefault:   true,
			},
		},
	}
}
