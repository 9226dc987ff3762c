package httpapi

import (
	"net/http"

	"github.com/bibliotecago/library-circulation-go/app/features/command/addstock"
	"github.com/bibliotecago/library-circulation-go/app/features/command/registermaterial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removematerial"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removematerialtype"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removeperson"
	"github.com/bibliotecago/library-circulation-go/app/features/command/removerole"
	"github.com/bibliotecago/library-circulation-go/app/features/command/savematerialtype"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saveperson"
	"github.com/bibliotecago/library-circulation-go/app/features/command/saverole"
	"github.com/bibliotecago/library-circulation-go/app/features/command/updatematerial"
	"github.com/bibliotecago/library-circulation-go/app/features/query/circulationjournal"
	"github.com/bibliotecago/library-circulation-go/app/features/query/materials"
	"github.com/bibliotecago/library-circulation-go/app/features/query/materialtypes"
	"github.com/bibliotecago/library-circulation-go/app/features/query/persons"
	"github.com/bibliotecago/library-circulation-go/app/features/query/roles"
	"github.com/bibliotecago/library-circulation-go/circulation"
)

// Materials

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	runQuery(s, w, r, s.handlers.ListMaterials, materials.BuildListQuery(s.replicaReads), func(m materials.Materials) any {
		return mapAll(m.Items, toMaterialResponse)
	})
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.GetMaterial, materials.BuildGetQuery(id), func(m circulation.MaterialSummary) any {
		return toMaterialResponse(m)
	})
}

func (s *Server) handleRegisterMaterial(w http.ResponseWriter, r *http.Request) {
	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := registermaterial.BuildCommand(req.Title, req.TypeID, *req.Quantity, s.now())
	runCommand(s, w, r, s.handlers.RegisterMaterial, command, http.StatusCreated, func(m circulation.MaterialSummary) any {
		return toMaterialResponse(m)
	})
}

func (s *Server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req materialRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := updatematerial.BuildCommand(id, req.Title, req.TypeID, *req.Quantity)
	runCommand(s, w, r, s.handlers.UpdateMaterial, command, http.StatusOK, func(m circulation.MaterialSummary) any {
		return toMaterialResponse(m)
	})
}

func (s *Server) handleRemoveMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runCommand(s, w, r, s.handlers.RemoveMaterial, removematerial.BuildCommand(id), http.StatusNoContent, nil)
}

func (s *Server) handleAddStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req stockRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := addstock.BuildCommand(id, req.Amount, s.now())
	runCommand(s, w, r, s.handlers.AddStock, command, http.StatusOK, func(c circulation.StockChange) any {
		return stockResponse{
			materialResponse: toMaterialResponse(circulation.MaterialSummary{Material: c.Material}),
			Increment:        c.Increment,
		}
	})
}

func (s *Server) handleCirculationJournal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.CirculationJournal, circulationjournal.BuildQuery(id), func(j circulationjournal.Journal) any {
		return toJournalResponse(j)
	})
}

// Persons

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	runQuery(s, w, r, s.handlers.ListPersons, persons.BuildListQuery(s.replicaReads), func(p persons.Persons) any {
		return mapAll(p.Items, toPersonResponse)
	})
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.GetPerson, persons.BuildGetQuery(id), func(p circulation.PersonProfile) any {
		return toPersonResponse(p)
	})
}

func (s *Server) handleRegisterPerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := saveperson.BuildRegisterCommand(req.Name, req.Cedula, req.RoleID)
	runCommand(s, w, r, s.handlers.SavePerson, command, http.StatusCreated, func(p circulation.PersonProfile) any {
		return toPersonResponse(p)
	})
}

func (s *Server) handleUpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := saveperson.BuildUpdateCommand(id, req.Name, req.Cedula, req.RoleID)
	runCommand(s, w, r, s.handlers.SavePerson, command, http.StatusOK, func(p circulation.PersonProfile) any {
		return toPersonResponse(p)
	})
}

func (s *Server) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runCommand(s, w, r, s.handlers.RemovePerson, removeperson.BuildCommand(id), http.StatusNoContent, nil)
}

// Roles

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	runQuery(s, w, r, s.handlers.ListRoles, roles.BuildListQuery(s.replicaReads), func(result roles.Roles) any {
		return mapAll(result.Items, toRoleResponse)
	})
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.GetRole, roles.BuildGetQuery(id), func(role circulation.Role) any {
		return toRoleResponse(role)
	})
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	s.saveRole(w, r, 0, http.StatusCreated)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.saveRole(w, r, id, http.StatusOK)
}

func (s *Server) saveRole(w http.ResponseWriter, r *http.Request, id int64, status int) {
	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := saverole.BuildCommand(id, req.Name, *req.Capacity)
	runCommand(s, w, r, s.handlers.SaveRole, command, status, func(role circulation.Role) any {
		return toRoleResponse(role)
	})
}

func (s *Server) handleRemoveRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runCommand(s, w, r, s.handlers.RemoveRole, removerole.BuildCommand(id), http.StatusNoContent, nil)
}

// Material types

func (s *Server) handleListMaterialTypes(w http.ResponseWriter, r *http.Request) {
	query := materialtypes.BuildListQuery(s.replicaReads)
	runQuery(s, w, r, s.handlers.ListMaterialTypes, query, func(result materialtypes.MaterialTypes) any {
		return mapAll(result.Items, toMaterialTypeResponse)
	})
}

func (s *Server) handleGetMaterialType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runQuery(s, w, r, s.handlers.GetMaterialType, materialtypes.BuildGetQuery(id), func(mt circulation.MaterialType) any {
		return toMaterialTypeResponse(mt)
	})
}

func (s *Server) handleCreateMaterialType(w http.ResponseWriter, r *http.Request) {
	s.saveMaterialType(w, r, 0, http.StatusCreated)
}

func (s *Server) handleUpdateMaterialType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.saveMaterialType(w, r, id, http.StatusOK)
}

func (s *Server) saveMaterialType(w http.ResponseWriter, r *http.Request, id int64, status int) {
	var req materialTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	command := savematerialtype.BuildCommand(id, req.Name)
	runCommand(s, w, r, s.handlers.SaveMaterialType, command, status, func(mt circulation.MaterialType) any {
		return toMaterialTypeResponse(mt)
	})
}

func (s *Server) handleRemoveMaterialType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	runCommand(s, w, r, s.handlers.RemoveMaterialType, removematerialtype.BuildCommand(id), http.StatusNoContent, nil)
}
