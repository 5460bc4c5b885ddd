package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/go-resty/resty/v2"
	log "github.com/sirupsen/logrus"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/shared"
)

// chatRule answers when any of its keywords appears in the user's
// message. Rules are checked in order; the first hit wins.
type chatRule struct {
	keywords []string
	reply    string
}

var tutorRules = []chatRule{
	{
		keywords: []string{"scrum"},
		reply:    "Scrum es un marco de trabajo ágil que organiza el desarrollo en ciclos cortos llamados Sprints, donde el equipo entrega incrementos funcionales del producto y se enfoca en la mejora continua mediante roles definidos, ceremonias y artefactos claros.",
	},
	{
		keywords: []string{"ágil", "agile"},
		reply:    "Agile es un enfoque de trabajo flexible que prioriza la adaptación al cambio, la colaboración constante y la entrega continua de valor mediante iteraciones cortas y retroalimentación frecuente entre el equipo y los interesados.",
	},
	{
		keywords: []string{"tradicional", "cascada"},
		reply:    "La metodología tradicional sigue un proceso secuencial donde cada fase debe completarse antes de avanzar a la siguiente, lo cual dificulta la adaptación al cambio una vez iniciado el proyecto.",
	},
	{
		keywords: []string{"roles", "product owner", "scrum master", "developer"},
		reply:    "Los roles de Scrum son el Product Owner, que maximiza el valor del producto; el Scrum Master, que facilita el proceso y elimina impedimentos; y los Developers, responsables de construir el incremento durante cada Sprint.",
	},
	{
		keywords: []string{"ceremonias", "events", "reuniones"},
		reply:    "Las ceremonias de Scrum incluyen el Sprint Planning para planificar el Sprint, el Daily Scrum para coordinar el trabajo diario, el Refinement para mejorar el Product Backlog, el Sprint Review para revisar el incremento y la Sprint Retrospective para reflexionar sobre el proceso.",
	},
	{
		keywords: []string{"artefactos", "product backlog", "sprint backlog", "increment"},
		reply:    "Los artefactos de Scrum son el Product Backlog que contiene todas las necesidades priorizadas del producto, el Sprint Backlog que define el trabajo del Sprint, y el Increment que es el resultado terminado y funcional al final de cada Sprint.",
	},
	{
		keywords: []string{"sprint"},
		reply:    "Un Sprint es un ciclo de tiempo fijo, generalmente de una a cuatro semanas, en el que el equipo desarrolla un incremento potencialmente entregable del producto mediante un proceso iterativo e incremental.",
	},
	{
		keywords: []string{"kanban"},
		reply:    "Kanban es un método visual que organiza el trabajo mediante tarjetas y columnas, enfocándose en limitar el trabajo en progreso y mejorar el flujo continuo para incrementar la eficiencia del equipo.",
	},
	{
		keywords: []string{"lean"},
		reply:    "Lean es un enfoque que busca maximizar el valor entregado al cliente reduciendo desperdicios, optimizando el flujo y promoviendo la mejora continua en todas las etapas del proceso de desarrollo.",
	},
	{
		keywords: []string{"xp", "extreme programming"},
		reply:    "Extreme Programming (XP) es una metodología ágil enfocada en mejorar la calidad del software mediante prácticas como desarrollo guiado por pruebas, programación en pareja, integración continua y ciclos de entrega muy cortos.",
	},
	{
		keywords: []string{"historia", "user story", "historias de usuario"},
		reply:    "Una historia de usuario es una descripción breve de una necesidad del usuario escrita en lenguaje natural que facilita la conversación, la comprensión del valor y la priorización dentro del Product Backlog.",
	},
	{
		keywords: []string{"velocity", "velocidad"},
		reply:    "La Velocidad es una métrica que indica la cantidad de puntos completados por el equipo en un Sprint, permitiendo estimar la capacidad futura y ayudar en la planificación realista de las iteraciones.",
	},
	{
		keywords: []string{"burndown"},
		reply:    "El Burndown Chart es una gráfica que muestra el trabajo restante en un Sprint y permite visualizar si el equipo está avanzando al ritmo esperado o necesita ajustar su planificación.",
	},
	{
		keywords: []string{"definition of done", "dod", "done"},
		reply:    "La Definition of Done es un acuerdo que establece los criterios mínimos de calidad que un incremento debe cumplir para considerarse terminado, asegurando consistencia y claridad sobre el estado del trabajo.",
	},
	{
		keywords: []string{"definition of ready", "dor", "ready"},
		reply:    "La Definition of Ready es un conjunto de criterios que definen cuándo una historia de usuario está suficientemente preparada, refinada y estimada como para ser incluida en un Sprint.",
	},
	{
		keywords: []string{"roadmap", "hoja de ruta"},
		reply:    "Un Roadmap es una planificación de alto nivel que muestra la evolución esperada del producto a lo largo del tiempo, incluyendo hitos, entregas importantes y prioridades estratégicas.",
	},
	{
		keywords: []string{"poker", "planning poker"},
		reply:    "Planning Poker es una técnica colaborativa de estimación donde los miembros del equipo asignan puntos a las historias utilizando cartas numeradas, fomentando la discusión y logrando un consenso más preciso.",
	},
	{
		keywords: []string{"autoorgan", "autónomo", "autoorganizado"},
		reply:    "Un equipo autoorganizado es aquel que decide internamente cómo abordar su trabajo, distribuye responsabilidades, resuelve problemas y mejora continuamente sin necesidad de supervisión externa directa.",
	},
}

const tutorFallback = "Puedo ayudarte con temas relacionados a Scrum, Agile, roles, ceremonias, artefactos, Lean, Kanban, XP, historias de usuario, Velocity, Burndown, Definition of Done, Definition of Ready, Roadmaps, Planning Poker y otros conceptos ágiles. Pregúntame sobre cualquiera de ellos."

// ChatService answers tutor questions. Keyword rules cover the course
// topics locally; anything else is relayed verbatim to an upstream
// OpenAI-compatible chat completions API when one is configured.
type ChatService struct {
	context.DefaultService

	client *resty.Client

	upstreamURL   string
	upstreamKey   string
	upstreamModel string
}

const CHAT_SVC = "chat_svc"

func (svc ChatService) Id() string {
	return CHAT_SVC
}

func (svc *ChatService) Configure(ctx *context.Context) error {
	svc.upstreamURL = os.Getenv("CHAT_UPSTREAM_URL")
	svc.upstreamKey = os.Getenv("CHAT_UPSTREAM_KEY")
	svc.upstreamModel = os.Getenv("CHAT_UPSTREAM_MODEL")

	return svc.DefaultService.Configure(ctx)
}

func (svc *ChatService) Start() error {
	svc.client = resty.New()

	if svc.upstreamURL == "" {
		log.Println("Chat upstream not configured, rule engine only")
	}
	return nil
}

// RuleReply runs the ordered keyword rules over the text. The match is
// case-insensitive substring containment, first rule wins.
func RuleReply(text string) (string, bool) {
	lowered := strings.ToLower(text)

	for _, rule := range tutorRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.reply, true
			}
		}
	}
	return tutorFallback, false
}

// Answer resolves a chat request. A rule hit short-circuits locally;
// otherwise the conversation goes upstream, falling back to the default
// reply when no upstream is configured.
func (svc *ChatService) Answer(req dto.ChatRequest) (interface{}, error) {
	last := req.Messages[len(req.Messages)-1]

	if reply, matched := RuleReply(last.Content); matched {
		return dto.ChatRuleResponse{Reply: reply, Matched: true}, nil
	}

	if svc.upstreamURL == "" {
		return dto.ChatRuleResponse{Reply: tutorFallback, Matched: false}, nil
	}

	return svc.relay(req)
}

// relay forwards the messages untouched and returns the upstream JSON
// as-is. No retries, no validation of the upstream answer.
func (svc *ChatService) relay(req dto.ChatRequest) (interface{}, error) {
	payload := map[string]interface{}{
		"messages": req.Messages,
	}
	if svc.upstreamModel != "" {
		payload["model"] = svc.upstreamModel
	}

	var body interface{}
	request := svc.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&body).
		SetError(&body)

	if svc.upstreamKey != "" {
		request.SetHeader("Authorization", fmt.Sprintf("Key %s", svc.upstreamKey))
	}

	resp, err := request.Post(svc.upstreamURL)
	if err != nil {
		log.WithError(err).Error("Chat upstream request failed")
		return nil, shared.NewInternalError(err, "Error interno del servidor")
	}

	if resp.IsError() {
		log.WithField("status", resp.StatusCode()).Error("Chat upstream returned error")
	}
	return body, nil
}
