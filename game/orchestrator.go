package game

import (
	"context"
	"math/rand/v2"
	"time"
)

// scheduleAgentResponses queues one response per agent for the given chat
// phase, each after an independent random delay inside the configured window
// to emulate human reaction latency. A response belongs to the phase
// generation it was scheduled for: if the match has moved on by the time the
// delay elapses, the response is silently dropped. No retries; a failed
// generation call falls back to the persona's canned line for the phase.
func (m *Match) scheduleAgentResponses(gen int, phase Phase) {
	m.mu.Lock()
	agents := make([]*Participant, 0, len(m.participants))
	for _, p := range m.participants {
		if !p.IsReal {
			agents = append(agents, p)
		}
	}
	m.mu.Unlock()

	window := m.opts.MaxAgentDelay - m.opts.MinAgentDelay
	for _, agent := range agents {
		delay := m.opts.MinAgentDelay
		if window > 0 {
			delay += time.Duration(rand.Int64N(int64(window)))
		}
		agent := agent
		m.scheduler.AfterFunc(delay, func() { m.agentRespond(gen, phase, agent) })
	}
}

// agentRespond runs in a timer goroutine. The generation check happens twice:
// before spending a call on the external collaborator, and again before
// appending, because the phase can change while the call is in flight.
func (m *Match) agentRespond(gen int, phase Phase, agent *Participant) {
	m.mu.Lock()
	if m.phaseGen != gen {
		m.mu.Unlock()
		return
	}

	req := GenerationRequest{
		Persona: agent.Persona,
		Phase:   phase,
		Prompt:  m.currentPrompt,
	}
	recent := m.messages
	if len(recent) > 20 {
		recent = recent[len(recent)-20:]
	}
	req.Recent = append([]Message(nil), recent...)

	if phase == PhaseRound2 {
		for i := len(m.messages) - 1; i >= 0; i-- {
			if m.messages[i].Phase == PhaseRound2 {
				req.ReplyTo = m.messages[i].Text
				break
			}
		}
	}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()

	text, err := m.generator.Generate(ctx, req)
	if err != nil || text == "" {
		if err != nil {
			m.logger.Debug().Err(err).Str("agent", agent.Name).Msg("generation failed, using fallback")
		}
		text = agent.Persona.Fallback(phase)
	}

	m.appendAgentMessage(gen, agent, text)
}

// appendAgentMessage appends an agent line, re-checking the generation under
// the same lock as the append so a phase transition during the external call
// cannot land the response tagged with the new phase.
func (m *Match) appendAgentMessage(gen int, agent *Participant, text string) bool {
	m.mu.Lock()
	if m.phaseGen != gen {
		m.mu.Unlock()
		return false
	}

	msg := Message{
		Id:         newId(),
		PlayerId:   agent.Id,
		PlayerName: agent.Name,
		Text:       text,
		Phase:      m.phase,
		Timestamp:  time.Now(),
	}
	m.messages = append(m.messages, msg)
	m.mu.Unlock()

	m.publisher.Publish(m.id, Event{Type: EventMessage, Payload: msg})
	return true
}
