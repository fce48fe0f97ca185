package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/jurisdesk/prazo-engine/pkg/errors"
)

// Registry is a concurrency-safe in-memory catalog seeded with the common
// CPC deadline types.  It satisfies Repository and is the default backend
// when no database is configured.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry builds a registry pre-populated with the seed catalog.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*Entry)}
	for _, e := range SeedEntries() {
		r.entries[e.Code] = e
	}
	return r
}

// NewEmptyRegistry builds a registry with no seed data.
func NewEmptyRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// GetEntry implements Repository.
func (r *Registry) GetEntry(_ context.Context, code string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[code]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeCatalogEntryNotFound,
			"deadline type %s is not registered", code)
	}
	cp := *e
	return &cp, nil
}

// ListEntries implements Repository.
func (r *Registry) ListEntries(_ context.Context) ([]*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// SaveEntry implements Repository.  The entry is validated before it
// replaces any previous registration under the same code.
func (r *Registry) SaveEntry(_ context.Context, entry *Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *entry
	r.entries[cp.Code] = &cp
	return nil
}

// SeedEntries returns the built-in catalog.  Counts and statutes follow the
// 2015 Código de Processo Civil and companion statutes; base terms are
// expressed in the unit implied by the counting mode.
func SeedEntries() []*Entry {
	return []*Entry{
		{
			Code:                    "CONTESTACAO",
			Name:                    "Contestação",
			Description:             "Defesa do réu no procedimento comum.",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 335",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Revelia e presunção de veracidade das alegações de fato (CPC art. 344).",
			TriggerDescription:      "Juntada do aviso de recebimento ou do mandado cumprido, ou audiência de conciliação infrutífera.",
		},
		{
			Code:                    "REPLICA",
			Name:                    "Réplica à contestação",
			Description:             "Manifestação do autor sobre defesa com preliminares ou documentos novos.",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassDilatory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC arts. 350 e 351",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Preclusão da faculdade de impugnar a defesa.",
			TriggerDescription:      "Intimação da juntada da contestação.",
		},
		{
			Code:                    "APELACAO",
			Name:                    "Apelação",
			Description:             "Recurso contra sentença.",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryAppellateAct,
			Statute:                 "CPC arts. 1.003, §5º, e 1.009",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Trânsito em julgado da sentença.",
			TriggerDescription:      "Intimação da sentença.",
		},
		{
			Code:                    "CONTRARRAZOES_APELACAO",
			Name:                    "Contrarrazões de apelação",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryAppellateAct,
			Statute:                 "CPC art. 1.010, §1º",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Julgamento do recurso sem a resposta do apelado.",
			TriggerDescription:      "Intimação para contrarrazoar.",
		},
		{
			Code:                    "AGRAVO_INSTRUMENTO",
			Name:                    "Agravo de instrumento",
			Description:             "Recurso contra decisões interlocutórias agraváveis.",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryAppellateAct,
			Statute:                 "CPC arts. 1.003, §5º, e 1.015",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Preclusão da decisão interlocutória.",
			TriggerDescription:      "Intimação da decisão interlocutória.",
		},
		{
			Code:                    "EMBARGOS_DECLARACAO",
			Name:                    "Embargos de declaração",
			BaseDays:                5,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryAppellateAct,
			Statute:                 "CPC art. 1.023",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Preclusão; o vício deve ser suscitado no recurso cabível.",
			TriggerDescription:      "Intimação da decisão embargada.",
		},
		{
			Code:                    "CUMPRIMENTO_VOLUNTARIO",
			Name:                    "Pagamento voluntário em cumprimento de sentença",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 523",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   false,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Multa de 10% e honorários de 10% sobre o débito.",
			TriggerDescription:      "Intimação do devedor para pagamento.",
		},
		{
			Code:                    "IMPUGNACAO_CUMPRIMENTO",
			Name:                    "Impugnação ao cumprimento de sentença",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 525",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Prosseguimento dos atos executivos.",
			TriggerDescription:      "Transcurso do prazo de pagamento voluntário, independentemente de nova intimação.",
		},
		{
			Code:                    "EMBARGOS_EXECUCAO",
			Name:                    "Embargos à execução",
			BaseDays:                15,
			Mode:                    ModeBusinessDays,
			Class:                   ClassPeremptory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 915",
			AllowsDoubling:          true,
			AllowsJoinderDoubling:   true,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Prosseguimento da execução.",
			TriggerDescription:      "Juntada do mandado de citação cumprido.",
		},
		{
			Code:                    "MANDADO_SEGURANCA",
			Name:                    "Impetração de mandado de segurança",
			Description:             "Prazo decadencial para impetração.",
			BaseDays:                120,
			Mode:                    ModeCalendarDays,
			Class:                   ClassPeremptory,
			Category:                CategoryPartyAct,
			Statute:                 "Lei 12.016/2009, art. 23",
			AllowsDoubling:          false,
			AllowsJoinderDoubling:   false,
			ExtendsOnNonBusinessDay: false,
			NonComplianceEffect:     "Decadência do direito à via mandamental.",
			TriggerDescription:      "Ciência do ato impugnado pelo interessado.",
		},
		{
			Code:                    "ACAO_RESCISORIA",
			Name:                    "Ajuizamento de ação rescisória",
			Description:             "Prazo decadencial de dois anos.",
			BaseDays:                730,
			Mode:                    ModeCalendarDays,
			Class:                   ClassPeremptory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 975",
			AllowsDoubling:          false,
			AllowsJoinderDoubling:   false,
			ExtendsOnNonBusinessDay: false,
			NonComplianceEffect:     "Decadência do direito à rescisão.",
			TriggerDescription:      "Trânsito em julgado da última decisão proferida no processo.",
		},
		{
			Code:                    "SUSPENSAO_EXECUCAO_PARCELAMENTO",
			Name:                    "Depósito e proposta de parcelamento na execução",
			BaseDays:                30,
			Mode:                    ModeCalendarDays,
			Class:                   ClassDilatory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 916",
			AllowsDoubling:          false,
			AllowsJoinderDoubling:   false,
			ExtendsOnNonBusinessDay: true,
			NonComplianceEffect:     "Vencimento antecipado das parcelas subsequentes.",
			TriggerDescription:      "Juntada do mandado de citação cumprido.",
		},
		{
			Code:                    "APRECIACAO_TUTELA_PLANTAO",
			Name:                    "Apreciação de tutela de urgência em plantão",
			Description:             "Prazo impróprio do juízo plantonista, contado em horas.",
			BaseDays:                24,
			Mode:                    ModeHours,
			Class:                   ClassImproper,
			Category:                CategoryJudgeAct,
			Statute:                 "CPC art. 226, I, c/c normas de plantão",
			AllowsDoubling:          false,
			AllowsJoinderDoubling:   false,
			ExtendsOnNonBusinessDay: false,
			NonComplianceEffect:     "Sem preclusão; eventual responsabilização administrativa.",
			TriggerDescription:      "Distribuição do pedido urgente ao plantão.",
		},
		{
			Code:                    "MANIFESTACAO_SEM_PRAZO",
			Name:                    "Arguição de incompetência absoluta",
			Description:             "Pode ser suscitada em qualquer tempo e grau de jurisdição.",
			BaseDays:                0,
			Mode:                    ModeBusinessDays,
			Class:                   ClassDilatory,
			Category:                CategoryPartyAct,
			Statute:                 "CPC art. 64, §1º",
			AllowsDoubling:          false,
			AllowsJoinderDoubling:   false,
			ExtendsOnNonBusinessDay: false,
			NonComplianceEffect:     "Sem preclusão.",
			TriggerDescription:      "Independe de intimação específica.",
		},
	}
}
