package engine

import (
	"sort"
	"time"

	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// ServiceMethod is the channel through which the party was served or
// intimated.  Each method maps to one of two start rules below.
type ServiceMethod string

const (
	// MethodPostalAck: juntada do aviso de recebimento aos autos.
	MethodPostalAck ServiceMethod = "postal_ack"
	// MethodOfficerService: juntada do mandado cumprido pelo oficial.
	MethodOfficerService ServiceMethod = "officer_service"
	// MethodClerkService: ato de comunicação ocorrido em cartório.
	MethodClerkService ServiceMethod = "clerk_service"
	// MethodEdict: fim do prazo de dilação do edital.
	MethodEdict ServiceMethod = "edict"
	// MethodElectronicService: citação ou intimação eletrônica consumada.
	MethodElectronicService ServiceMethod = "electronic_service"
	// MethodPrecatoryService: juntada da carta precatória/rogatória cumprida.
	MethodPrecatoryService ServiceMethod = "precatory_service"
	// MethodDiaryPublication: publicação no diário de justiça eletrônico.
	MethodDiaryPublication ServiceMethod = "diary_publication"
	// MethodPortalIntimation: intimação pelo portal do processo eletrônico.
	MethodPortalIntimation ServiceMethod = "portal_intimation"
	// MethodRegistryIntimation: retirada dos autos em carga pelo procurador.
	MethodRegistryIntimation ServiceMethod = "registry_intimation"
	// MethodHearingIntimation: intimação realizada em audiência.
	MethodHearingIntimation ServiceMethod = "hearing_intimation"
	// MethodOpenCourtDecision: decisão proferida em audiência com as partes
	// presentes.
	MethodOpenCourtDecision ServiceMethod = "open_court_decision"
	// MethodDutyService: comunicação realizada durante o plantão judiciário.
	MethodDutyService ServiceMethod = "duty_service"
)

// StartRule selects how the start-of-count date derives from the trigger.
type StartRule string

const (
	// StartNextBusinessDay begins the count on the first business day after
	// the triggering act.  This is the default rule.
	StartNextBusinessDay StartRule = "next_business_day"
	// StartOnActDate begins the count on the act's own date.
	StartOnActDate StartRule = "act_date"
)

// MethodRule is one row of the per-method start-rule table.  The table is
// data, not logic: each row cites the procedural provision it implements so
// the mapping can be audited against the statute.
type MethodRule struct {
	Method      ServiceMethod `json:"method"`
	Rule        StartRule     `json:"rule"`
	Citation    string        `json:"citation"`
	Description string        `json:"description"`
}

var methodRules = map[ServiceMethod]MethodRule{
	MethodPostalAck: {
		Method: MethodPostalAck, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, I",
		Description: "Citação pelo correio: conta-se da juntada do aviso de recebimento.",
	},
	MethodOfficerService: {
		Method: MethodOfficerService, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, II",
		Description: "Citação por oficial de justiça: conta-se da juntada do mandado cumprido.",
	},
	MethodClerkService: {
		Method: MethodClerkService, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, III",
		Description: "Ato de comunicação realizado em cartório.",
	},
	MethodEdict: {
		Method: MethodEdict, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, IV",
		Description: "Citação por edital: conta-se do fim da dilação assinada pelo juiz.",
	},
	MethodElectronicService: {
		Method: MethodElectronicService, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, V",
		Description: "Citação ou intimação eletrônica consumada.",
	},
	MethodPrecatoryService: {
		Method: MethodPrecatoryService, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, VI",
		Description: "Carta precatória ou rogatória: conta-se da juntada da carta cumprida.",
	},
	MethodDiaryPublication: {
		Method: MethodDiaryPublication, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 224, §§2º e 3º",
		Description: "Publicação no diário de justiça eletrônico.",
	},
	MethodPortalIntimation: {
		Method: MethodPortalIntimation, Rule: StartNextBusinessDay,
		Citation:    "Lei 11.419/2006, art. 5º",
		Description: "Intimação pelo portal eletrônico, consumada na consulta ou no decurso do prazo.",
	},
	MethodRegistryIntimation: {
		Method: MethodRegistryIntimation, Rule: StartNextBusinessDay,
		Citation:    "CPC art. 231, VIII",
		Description: "Retirada dos autos em carga pelo procurador.",
	},
	MethodHearingIntimation: {
		Method: MethodHearingIntimation, Rule: StartOnActDate,
		Citation:    "CPC art. 1.003, §1º",
		Description: "Intimação realizada em audiência, com ciência imediata das partes presentes.",
	},
	MethodOpenCourtDecision: {
		Method: MethodOpenCourtDecision, Rule: StartOnActDate,
		Citation:    "CPC art. 1.003, §1º",
		Description: "Decisão proferida em audiência com todas as partes presentes.",
	},
	MethodDutyService: {
		Method: MethodDutyService, Rule: StartOnActDate,
		Citation:    "normas locais de plantão judiciário",
		Description: "Comunicação realizada durante o plantão, com ciência imediata.",
	},
}

// ServiceMethods returns the full rule table ordered by method code, for the
// read-only API surface.
func ServiceMethods() []MethodRule {
	out := make([]MethodRule, 0, len(methodRules))
	for _, r := range methodRules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out
}

// RuleFor returns the rule row for a method, reporting ENG_001 for methods
// outside the table.
func RuleFor(method ServiceMethod) (MethodRule, error) {
	r, ok := methodRules[method]
	if !ok {
		return MethodRule{}, errors.Newf(errors.ErrCodeInvalidServiceMethod,
			"service method %q is not recognized", method)
	}
	return r, nil
}

// ResolveStart maps a triggering act onto the start-of-count date.  The
// mapped rule is applied first; the result then rolls forward past weekends,
// holidays, and suspensions, so the returned date is always a business day.
func ResolveStart(trigger time.Time, method ServiceMethod, snap *calendar.Snapshot) (time.Time, error) {
	rule, err := RuleFor(method)
	if err != nil {
		return time.Time{}, err
	}

	cursor := calendar.DateOf(trigger)
	if rule.Rule == StartNextBusinessDay {
		cursor = cursor.AddDate(0, 0, 1)
	}
	for !snap.IsBusinessDay(cursor) {
		cursor = cursor.AddDate(0, 0, 1)
	}
	return cursor, nil
}
