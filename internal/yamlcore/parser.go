// Copyright 2026 The streamyaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Parser stage: transforms the token stream into an event stream.
// Implements a pushdown automaton over the following grammar:
//
// stream               ::= STREAM-START implicit_document? explicit_document* STREAM-END
// implicit_document    ::= block_node DOCUMENT-END*
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
// block_node_or_indentless_sequence    ::=
//                          ALIAS
//                          | properties (block_content | indentless_block_sequence)?
//                          | block_content
//                          | indentless_block_sequence
// block_node           ::= ALIAS
//                          | properties block_content?
//                          | block_content
// flow_node            ::= ALIAS
//                          | properties flow_content?
//                          | flow_content
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
// block_content        ::= block_collection | flow_collection | SCALAR
// flow_content         ::= flow_collection | SCALAR
// block_collection     ::= block_sequence | block_mapping
// flow_collection      ::= flow_sequence | flow_mapping
// block_sequence       ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
// block_mapping        ::= BLOCK-MAPPING_START
//                          ((KEY block_node_or_indentless_sequence?)?
//                          (VALUE block_node_or_indentless_sequence?)?)*
//                          BLOCK-END
// flow_sequence        ::= FLOW-SEQUENCE-START
//                          (flow_sequence_entry FLOW-ENTRY)*
//                          flow_sequence_entry?
//                          FLOW-SEQUENCE-END
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
// flow_mapping         ::= FLOW-MAPPING-START
//                          (flow_mapping_entry FLOW-ENTRY)*
//                          flow_mapping_entry?
//                          FLOW-MAPPING-END
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?

package yamlcore

import (
	"fmt"
	"io"
	"strings"
)

// parserState represents the state of the parser automaton.
type parserState int8

const (
	parseStreamStartState parserState = iota

	parseImplicitDocumentStartState // Expect the beginning of an implicit document.
	parseDocumentStartState         // Expect DOCUMENT-START.
	parseDocumentContentState       // Expect the content of a document.
	parseDocumentEndState           // Expect DOCUMENT-END.
	parseBlockNodeState             // Expect a block node.
	parseBlockSequenceFirstEntryState
	parseBlockSequenceEntryState
	parseIndentlessSequenceEntryState
	parseBlockMappingFirstKeyState
	parseBlockMappingKeyState
	parseBlockMappingValueState
	parseFlowSequenceFirstEntryState
	parseFlowSequenceEntryState
	parseFlowSequenceEntryMappingKeyState
	parseFlowSequenceEntryMappingValueState
	parseFlowSequenceEntryMappingEndState
	parseFlowMappingFirstKeyState
	parseFlowMappingKeyState
	parseFlowMappingValueState
	parseFlowMappingEmptyValueState
	parseEndState // Expect nothing.
)

// DefaultMaxDepth bounds the nesting depth of collections when no explicit
// limit is configured. Exceeding it is a ParserError rather than a stack
// overflow.
const DefaultMaxDepth = 10_000

// Parser turns a YAML character stream into events. One call to Parse yields
// exactly one event. The first error is sticky: every later call returns it
// again.
type Parser struct {
	scanner  *scanner
	encoding Encoding

	state  parserState
	states []parserState
	marks  []Mark

	tagDirectives []TagDirective

	// Anchor bindings of the current document. Ids are assigned in document
	// order starting at 1; rebinding a name keeps the old node reachable
	// through already-emitted events but points the name at the new id.
	anchors      map[string]int
	nextAnchorID int

	maxDepth int

	tok          *token
	tokAvailable bool

	streamEndProduced bool
	lastError         error
}

// NewParserFromRunes wires a parser over already-decoded input. Most callers
// want NewParser.
func NewParserFromRunes(input []rune, enc Encoding, maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{
		scanner:  newScanner(input),
		encoding: enc,
		maxDepth: maxDepth,
	}
}

// NewParser decodes in (detecting UTF-8 or UTF-16 input) and returns a
// parser over it.
func NewParser(in []byte, maxDepth int) (*Parser, error) {
	runes, enc, err := prepareInput(in)
	if err != nil {
		return nil, err
	}
	return NewParserFromRunes(runes, enc, maxDepth), nil
}

// NewParserFromReader drains r and returns a parser over its contents.
func NewParserFromReader(r io.Reader, maxDepth int) (*Parser, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return NewParser(data, maxDepth)
}

// Parse writes the next event of the stream into event. After the StreamEnd
// event has been returned, Parse returns io.EOF.
func (p *Parser) Parse(event *Event) error {
	*event = Event{}

	if p.lastError != nil {
		return p.lastError
	}
	if p.streamEndProduced || p.state == parseEndState {
		return io.EOF
	}
	if err := p.stateMachine(event); err != nil {
		p.lastError = err
		return err
	}
	if event.Type == StreamEndEvent {
		p.streamEndProduced = true
	}
	return nil
}

// Err returns the sticky error, if any.
func (p *Parser) Err() error { return p.lastError }

// Encoding returns the detected input encoding.
func (p *Parser) Encoding() Encoding { return p.encoding }

// peekToken makes the next token available without consuming it.
func (p *Parser) peekToken(out **token) error {
	if !p.tokAvailable {
		t, ok, err := p.scanner.nextToken()
		if err != nil {
			return err
		}
		if !ok {
			return parserErr("no more tokens", p.scanner.mark)
		}
		p.tok = &t
		p.tokAvailable = true
	}
	*out = p.tok
	return nil
}

// skipToken consumes the token made available by peekToken.
func (p *Parser) skipToken() {
	p.tokAvailable = false
}

// pushState pushes a return state, enforcing the depth ceiling. Each open
// collection holds one state on the stack, so the stack depth bounds the
// nesting depth.
func (p *Parser) pushState(state parserState, mark Mark) error {
	if len(p.states) >= p.maxDepth {
		return parserErr(
			fmt.Sprintf("exceeded maximum nesting depth of %d", p.maxDepth), mark)
	}
	p.states = append(p.states, state)
	return nil
}

func (p *Parser) popState() {
	p.state = p.states[len(p.states)-1]
	p.states = p.states[:len(p.states)-1]
}

// bindAnchor assigns the next anchor id to name. Rebinding an existing name
// points it at the new id; the previous binding is unreachable from then on.
func (p *Parser) bindAnchor(name string) int {
	if p.anchors == nil {
		p.anchors = make(map[string]int)
	}
	p.nextAnchorID++
	p.anchors[name] = p.nextAnchorID
	return p.nextAnchorID
}

// State dispatcher.
func (p *Parser) stateMachine(event *Event) error {
	switch p.state {
	case parseStreamStartState:
		return p.parseStreamStart(event)
	case parseImplicitDocumentStartState:
		return p.parseDocumentStart(event, true)
	case parseDocumentStartState:
		return p.parseDocumentStart(event, false)
	case parseDocumentContentState:
		return p.parseDocumentContent(event)
	case parseDocumentEndState:
		return p.parseDocumentEnd(event)
	case parseBlockNodeState:
		return p.parseNode(event, true, false)
	case parseBlockSequenceFirstEntryState:
		return p.parseBlockSequenceEntry(event, true)
	case parseBlockSequenceEntryState:
		return p.parseBlockSequenceEntry(event, false)
	case parseIndentlessSequenceEntryState:
		return p.parseIndentlessSequenceEntry(event)
	case parseBlockMappingFirstKeyState:
		return p.parseBlockMappingKey(event, true)
	case parseBlockMappingKeyState:
		return p.parseBlockMappingKey(event, false)
	case parseBlockMappingValueState:
		return p.parseBlockMappingValue(event)
	case parseFlowSequenceFirstEntryState:
		return p.parseFlowSequenceEntry(event, true)
	case parseFlowSequenceEntryState:
		return p.parseFlowSequenceEntry(event, false)
	case parseFlowSequenceEntryMappingKeyState:
		return p.parseFlowSequenceEntryMappingKey(event)
	case parseFlowSequenceEntryMappingValueState:
		return p.parseFlowSequenceEntryMappingValue(event)
	case parseFlowSequenceEntryMappingEndState:
		return p.parseFlowSequenceEntryMappingEnd(event)
	case parseFlowMappingFirstKeyState:
		return p.parseFlowMappingKey(event, true)
	case parseFlowMappingKeyState:
		return p.parseFlowMappingKey(event, false)
	case parseFlowMappingValueState:
		return p.parseFlowMappingValue(event, false)
	case parseFlowMappingEmptyValueState:
		return p.parseFlowMappingValue(event, true)
	default:
		panic("invalid parser state")
	}
}

// Parse the production:
// stream   ::= STREAM-START implicit_document? explicit_document* STREAM-END
//
//	************
func (p *Parser) parseStreamStart(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if tok.typ != tokenStreamStart {
		return parserErr("did not find expected <stream-start>", tok.span.Start)
	}
	p.state = parseImplicitDocumentStartState
	*event = Event{
		Type:     StreamStartEvent,
		Span:     tok.span,
		Encoding: p.encoding,
	}
	p.skipToken()
	return nil
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	*************************
func (p *Parser) parseDocumentStart(event *Event, implicit bool) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	// Parse extra document end indicators.
	for tok.typ == tokenDocumentEnd {
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
	}

	if implicit && tok.typ != tokenVersionDirective &&
		tok.typ != tokenTagDirective &&
		tok.typ != tokenDocumentStart &&
		tok.typ != tokenStreamEnd {
		// Parse an implicit document.
		if err := p.processDirectives(nil, nil); err != nil {
			return err
		}
		if err := p.pushState(parseDocumentEndState, tok.span.Start); err != nil {
			return err
		}
		p.state = parseBlockNodeState
		p.resetDocumentAnchors()

		*event = Event{
			Type: DocumentStartEvent,
			Span: tok.span,
		}
	} else if tok.typ != tokenStreamEnd {
		// Parse an explicit document.
		var version *VersionDirective
		var tagDirectives []TagDirective
		startMark := tok.span.Start
		if err := p.processDirectives(&version, &tagDirectives); err != nil {
			return err
		}
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenDocumentStart {
			return parserErr("did not find expected <document start>", tok.span.Start)
		}
		if err := p.pushState(parseDocumentEndState, tok.span.Start); err != nil {
			return err
		}
		p.state = parseDocumentContentState
		p.resetDocumentAnchors()

		*event = Event{
			Type:          DocumentStartEvent,
			Span:          Span{Start: startMark, End: tok.span.End},
			Version:       version,
			TagDirectives: tagDirectives,
			Explicit:      true,
		}
		p.skipToken()
	} else {
		// Parse the stream end.
		p.state = parseEndState
		*event = Event{
			Type: StreamEndEvent,
			Span: tok.span,
		}
		p.skipToken()
	}
	return nil
}

// resetDocumentAnchors clears the anchor bindings; ids restart at 1 for the
// next document.
func (p *Parser) resetDocumentAnchors() {
	clear(p.anchors)
	p.nextAnchorID = 0
}

// Parse the productions:
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
//
//	***********
func (p *Parser) parseDocumentContent(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if tok.typ == tokenVersionDirective ||
		tok.typ == tokenTagDirective ||
		tok.typ == tokenDocumentStart ||
		tok.typ == tokenDocumentEnd ||
		tok.typ == tokenStreamEnd {
		p.popState()
		return p.processEmptyScalar(event, tok.span.Start)
	}
	return p.parseNode(event, true, false)
}

// Parse the productions:
// implicit_document    ::= block_node DOCUMENT-END*
//
//	*************
//
// explicit_document    ::= DIRECTIVE* DOCUMENT-START block_node? DOCUMENT-END*
func (p *Parser) parseDocumentEnd(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	startMark := tok.span.Start
	endMark := tok.span.Start

	explicit := false
	if tok.typ == tokenDocumentEnd {
		endMark = tok.span.End
		p.skipToken()
		explicit = true
	}

	p.tagDirectives = p.tagDirectives[:0]

	p.state = parseDocumentStartState
	*event = Event{
		Type:     DocumentEndEvent,
		Span:     Span{Start: startMark, End: endMark},
		Explicit: explicit,
	}
	return nil
}

// Parse directives.
func (p *Parser) processDirectives(versionRef **VersionDirective, tagDirectivesRef *[]TagDirective) error {
	var version *VersionDirective
	var tagDirectives []TagDirective

	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	for tok.typ == tokenVersionDirective || tok.typ == tokenTagDirective {
		switch tok.typ {
		case tokenVersionDirective:
			if version != nil {
				return parserErr("found duplicate %YAML directive", tok.span.Start)
			}
			if tok.major != 1 {
				return parserErr("found incompatible YAML document", tok.span.Start)
			}
			version = &VersionDirective{Major: tok.major, Minor: tok.minor}
		case tokenTagDirective:
			// An empty handle marks a skipped unknown directive.
			if tok.value != "" {
				value := TagDirective{Handle: tok.value, Prefix: tok.suffix}
				if err := p.appendTagDirective(value, false, tok.span.Start); err != nil {
					return err
				}
				tagDirectives = append(tagDirectives, value)
			}
		}

		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
	}

	for _, d := range defaultTagDirectives {
		if err := p.appendTagDirective(d, true, tok.span.Start); err != nil {
			return err
		}
	}

	if versionRef != nil {
		*versionRef = version
	}
	if tagDirectivesRef != nil {
		*tagDirectivesRef = tagDirectives
	}
	return nil
}

// Append a tag directive to the directives stack.
func (p *Parser) appendTagDirective(value TagDirective, allowDuplicates bool, mark Mark) error {
	for i := range p.tagDirectives {
		if value.Handle == p.tagDirectives[i].Handle {
			if allowDuplicates {
				return nil
			}
			return parserErr("found duplicate %TAG directive", mark)
		}
	}
	p.tagDirectives = append(p.tagDirectives, value)
	return nil
}

// Parse the productions:
// block_node_or_indentless_sequence    ::=
//
//	ALIAS
//	*****
//	| properties (block_content | indentless_block_sequence)?
//	  **********  *
//	| block_content | indentless_block_sequence
//	  *
//
// block_node           ::= ALIAS
//
//	*****
//	| properties block_content?
//	  ********** *
//	| block_content
//	  *
//
// flow_node            ::= ALIAS
//
//	*****
//	| properties flow_content?
//	  ********** *
//	| flow_content
//	  *
//
// properties           ::= TAG ANCHOR? | ANCHOR TAG?
//
//	*************************
//
// block_content        ::= block_collection | flow_collection | SCALAR
//
//	******
//
// flow_content         ::= flow_collection | SCALAR
//
//	******
func (p *Parser) parseNode(event *Event, block, indentlessSequence bool) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	if tok.typ == tokenAlias {
		id, ok := p.anchors[tok.value]
		if !ok {
			err := anchorErr(tok.value, tok.span.Start)
			return err
		}
		p.popState()
		*event = Event{
			Type:   AliasEvent,
			Span:   tok.span,
			Anchor: id,
		}
		p.skipToken()
		return nil
	}

	startMark := tok.span.Start
	endMark := tok.span.Start

	var tagToken bool
	var tagHandle, tagSuffix string
	var tagMark Mark
	anchorID := 0
	switch tok.typ {
	case tokenAnchor:
		anchorID = p.bindAnchor(tok.value)
		startMark = tok.span.Start
		endMark = tok.span.End
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ == tokenTag {
			tagToken = true
			tagHandle = tok.value
			tagSuffix = tok.suffix
			tagMark = tok.span.Start
			endMark = tok.span.End
			p.skipToken()
			if err := p.peekToken(&tok); err != nil {
				return err
			}
		}
	case tokenTag:
		tagToken = true
		tagHandle = tok.value
		tagSuffix = tok.suffix
		startMark = tok.span.Start
		tagMark = tok.span.Start
		endMark = tok.span.End
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ == tokenAnchor {
			anchorID = p.bindAnchor(tok.value)
			endMark = tok.span.End
			p.skipToken()
			if err := p.peekToken(&tok); err != nil {
				return err
			}
		}
	}

	var tag string
	if tagToken {
		if tagHandle == "" {
			tag = tagSuffix
		} else {
			for i := range p.tagDirectives {
				if p.tagDirectives[i].Handle == tagHandle {
					tag = p.tagDirectives[i].Prefix + tagSuffix
					break
				}
			}
			if tag == "" {
				return parserErrContext(
					"while parsing a node", startMark,
					"found undefined tag handle", tagMark)
			}
		}
	}

	if indentlessSequence && tok.typ == tokenBlockEntry {
		endMark = tok.span.End
		p.state = parseIndentlessSequenceEntryState
		*event = Event{
			Type:            SequenceStartEvent,
			Span:            Span{Start: startMark, End: endMark},
			Anchor:          anchorID,
			Tag:             tag,
			CollectionStyle: BlockStyle,
		}
		return nil
	}
	if tok.typ == tokenScalar {
		endMark = tok.span.End
		p.popState()
		*event = Event{
			Type:   ScalarEvent,
			Span:   Span{Start: startMark, End: endMark},
			Anchor: anchorID,
			Tag:    tag,
			Value:  tok.value,
			Style:  tok.style,
		}
		p.skipToken()
		return nil
	}
	if tok.typ == tokenFlowSequenceStart {
		endMark = tok.span.End
		p.state = parseFlowSequenceFirstEntryState
		*event = Event{
			Type:            SequenceStartEvent,
			Span:            Span{Start: startMark, End: endMark},
			Anchor:          anchorID,
			Tag:             tag,
			CollectionStyle: FlowStyle,
		}
		return nil
	}
	if tok.typ == tokenFlowMappingStart {
		endMark = tok.span.End
		p.state = parseFlowMappingFirstKeyState
		*event = Event{
			Type:            MappingStartEvent,
			Span:            Span{Start: startMark, End: endMark},
			Anchor:          anchorID,
			Tag:             tag,
			CollectionStyle: FlowStyle,
		}
		return nil
	}
	if block && tok.typ == tokenBlockSequenceStart {
		endMark = tok.span.End
		p.state = parseBlockSequenceFirstEntryState
		*event = Event{
			Type:            SequenceStartEvent,
			Span:            Span{Start: startMark, End: endMark},
			Anchor:          anchorID,
			Tag:             tag,
			CollectionStyle: BlockStyle,
		}
		return nil
	}
	if block && tok.typ == tokenBlockMappingStart {
		endMark = tok.span.End
		p.state = parseBlockMappingFirstKeyState
		*event = Event{
			Type:            MappingStartEvent,
			Span:            Span{Start: startMark, End: endMark},
			Anchor:          anchorID,
			Tag:             tag,
			CollectionStyle: BlockStyle,
		}
		return nil
	}
	if anchorID != 0 || tag != "" {
		// A node with properties but no content is an empty plain scalar.
		p.popState()
		*event = Event{
			Type:   ScalarEvent,
			Span:   Span{Start: startMark, End: endMark},
			Anchor: anchorID,
			Tag:    tag,
			Style:  PlainStyle,
		}
		return nil
	}

	context := "while parsing a flow node"
	if block {
		context = "while parsing a block node"
	}
	return parserErrContext(context, startMark,
		"did not find expected node content", tok.span.Start)
}

// Parse the productions:
// block_sequence ::= BLOCK-SEQUENCE-START (BLOCK-ENTRY block_node?)* BLOCK-END
//
//	********************  *********** *             *********
func (p *Parser) parseBlockSequenceEntry(event *Event, first bool) error {
	if first {
		var tok *token
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		p.marks = append(p.marks, tok.span.Start)
		p.skipToken()
	}

	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	if tok.typ == tokenBlockEntry {
		mark := tok.span.End
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenBlockEntry && tok.typ != tokenBlockEnd {
			if err := p.pushState(parseBlockSequenceEntryState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, true, false)
		}
		p.state = parseBlockSequenceEntryState
		return p.processEmptyScalar(event, mark)
	}
	if tok.typ == tokenBlockEnd {
		p.popState()
		p.marks = p.marks[:len(p.marks)-1]
		*event = Event{
			Type: SequenceEndEvent,
			Span: tok.span,
		}
		p.skipToken()
		return nil
	}

	contextMark := p.marks[len(p.marks)-1]
	p.marks = p.marks[:len(p.marks)-1]
	return parserErrContext(
		"while parsing a block collection", contextMark,
		"did not find expected '-' indicator", tok.span.Start)
}

// Parse the productions:
// indentless_sequence  ::= (BLOCK-ENTRY block_node?)+
//
//	*********** *
func (p *Parser) parseIndentlessSequenceEntry(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	if tok.typ == tokenBlockEntry {
		mark := tok.span.End
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenBlockEntry &&
			tok.typ != tokenKey &&
			tok.typ != tokenValue &&
			tok.typ != tokenBlockEnd {
			if err := p.pushState(parseIndentlessSequenceEntryState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, true, false)
		}
		p.state = parseIndentlessSequenceEntryState
		return p.processEmptyScalar(event, mark)
	}
	p.popState()
	*event = Event{
		Type: SequenceEndEvent,
		Span: EmptySpan(tok.span.Start),
	}
	return nil
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	*******************
//	((KEY block_node_or_indentless_sequence?)?
//	  *** *
//	(VALUE block_node_or_indentless_sequence?)?)*
//
//	BLOCK-END
//	*********
func (p *Parser) parseBlockMappingKey(event *Event, first bool) error {
	if first {
		var tok *token
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		p.marks = append(p.marks, tok.span.Start)
		p.skipToken()
	}

	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	switch tok.typ {
	case tokenKey:
		mark := tok.span.End
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenKey &&
			tok.typ != tokenValue &&
			tok.typ != tokenBlockEnd {
			if err := p.pushState(parseBlockMappingValueState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, true, true)
		}
		p.state = parseBlockMappingValueState
		return p.processEmptyScalar(event, mark)
	case tokenBlockEnd:
		p.popState()
		p.marks = p.marks[:len(p.marks)-1]
		*event = Event{
			Type: MappingEndEvent,
			Span: tok.span,
		}
		p.skipToken()
		return nil
	}

	contextMark := p.marks[len(p.marks)-1]
	p.marks = p.marks[:len(p.marks)-1]
	return parserErrContext(
		"while parsing a block mapping", contextMark,
		"did not find expected key", tok.span.Start)
}

// Parse the productions:
// block_mapping        ::= BLOCK-MAPPING_START
//
//	((KEY block_node_or_indentless_sequence?)?
//
//	(VALUE block_node_or_indentless_sequence?)?)*
//	 ***** *
//	BLOCK-END
func (p *Parser) parseBlockMappingValue(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if tok.typ == tokenValue {
		mark := tok.span.End
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenKey &&
			tok.typ != tokenValue &&
			tok.typ != tokenBlockEnd {
			if err := p.pushState(parseBlockMappingKeyState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, true, true)
		}
		p.state = parseBlockMappingKeyState
		return p.processEmptyScalar(event, mark)
	}
	p.state = parseBlockMappingKeyState
	return p.processEmptyScalar(event, tok.span.Start)
}

// Parse the productions:
// flow_sequence        ::= FLOW-SEQUENCE-START
//
//	*******************
//	(flow_sequence_entry FLOW-ENTRY)*
//	 *                   **********
//	flow_sequence_entry?
//	*
//	FLOW-SEQUENCE-END
//	*****************
//
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (p *Parser) parseFlowSequenceEntry(event *Event, first bool) error {
	if first {
		var tok *token
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		p.marks = append(p.marks, tok.span.Start)
		p.skipToken()
	}
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if tok.typ != tokenFlowSequenceEnd {
		if !first {
			if tok.typ == tokenFlowEntry {
				p.skipToken()
				if err := p.peekToken(&tok); err != nil {
					return err
				}
			} else {
				contextMark := p.marks[len(p.marks)-1]
				p.marks = p.marks[:len(p.marks)-1]
				return parserErrContext(
					"while parsing a flow sequence", contextMark,
					"did not find expected ',' or ']'", tok.span.Start)
			}
		}

		if tok.typ == tokenKey {
			p.state = parseFlowSequenceEntryMappingKeyState
			*event = Event{
				Type:            MappingStartEvent,
				Span:            tok.span,
				CollectionStyle: FlowStyle,
			}
			p.skipToken()
			return nil
		} else if tok.typ != tokenFlowSequenceEnd {
			if err := p.pushState(parseFlowSequenceEntryState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, false, false)
		}
	}

	p.popState()
	p.marks = p.marks[:len(p.marks)-1]
	*event = Event{
		Type: SequenceEndEvent,
		Span: tok.span,
	}
	p.skipToken()
	return nil
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*** *
func (p *Parser) parseFlowSequenceEntryMappingKey(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if tok.typ != tokenValue &&
		tok.typ != tokenFlowEntry &&
		tok.typ != tokenFlowSequenceEnd {
		if err := p.pushState(parseFlowSequenceEntryMappingValueState, tok.span.Start); err != nil {
			return err
		}
		return p.parseNode(event, false, false)
	}
	mark := tok.span.End
	p.skipToken()
	p.state = parseFlowSequenceEntryMappingValueState
	return p.processEmptyScalar(event, mark)
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	***** *
func (p *Parser) parseFlowSequenceEntryMappingValue(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if tok.typ == tokenValue {
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenFlowEntry && tok.typ != tokenFlowSequenceEnd {
			if err := p.pushState(parseFlowSequenceEntryMappingEndState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, false, false)
		}
	}
	p.state = parseFlowSequenceEntryMappingEndState
	return p.processEmptyScalar(event, tok.span.Start)
}

// Parse the productions:
// flow_sequence_entry  ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//
//	*
func (p *Parser) parseFlowSequenceEntryMappingEnd(event *Event) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	p.state = parseFlowSequenceEntryState
	*event = Event{
		Type: MappingEndEvent,
		Span: EmptySpan(tok.span.Start),
	}
	return nil
}

// Parse the productions:
// flow_mapping         ::= FLOW-MAPPING-START
//
//	******************
//	(flow_mapping_entry FLOW-ENTRY)*
//	 *                  **********
//	flow_mapping_entry?
//	******************
//	FLOW-MAPPING-END
//	****************
//
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - *** *
func (p *Parser) parseFlowMappingKey(event *Event, first bool) error {
	if first {
		var tok *token
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		p.marks = append(p.marks, tok.span.Start)
		p.skipToken()
	}

	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}

	if tok.typ != tokenFlowMappingEnd {
		if !first {
			if tok.typ == tokenFlowEntry {
				p.skipToken()
				if err := p.peekToken(&tok); err != nil {
					return err
				}
			} else {
				contextMark := p.marks[len(p.marks)-1]
				p.marks = p.marks[:len(p.marks)-1]
				return parserErrContext(
					"while parsing a flow mapping", contextMark,
					"did not find expected ',' or '}'", tok.span.Start)
			}
		}

		if tok.typ == tokenKey {
			p.skipToken()
			if err := p.peekToken(&tok); err != nil {
				return err
			}
			if tok.typ != tokenValue &&
				tok.typ != tokenFlowEntry &&
				tok.typ != tokenFlowMappingEnd {
				if err := p.pushState(parseFlowMappingValueState, tok.span.Start); err != nil {
					return err
				}
				return p.parseNode(event, false, false)
			}
			p.state = parseFlowMappingValueState
			return p.processEmptyScalar(event, tok.span.Start)
		} else if tok.typ != tokenFlowMappingEnd {
			if err := p.pushState(parseFlowMappingEmptyValueState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, false, false)
		}
	}

	p.popState()
	p.marks = p.marks[:len(p.marks)-1]
	*event = Event{
		Type: MappingEndEvent,
		Span: tok.span,
	}
	p.skipToken()
	return nil
}

// Parse the productions:
// flow_mapping_entry   ::= flow_node | KEY flow_node? (VALUE flow_node?)?
//   - ***** *
func (p *Parser) parseFlowMappingValue(event *Event, empty bool) error {
	var tok *token
	if err := p.peekToken(&tok); err != nil {
		return err
	}
	if empty {
		p.state = parseFlowMappingKeyState
		return p.processEmptyScalar(event, tok.span.Start)
	}
	if tok.typ == tokenValue {
		p.skipToken()
		if err := p.peekToken(&tok); err != nil {
			return err
		}
		if tok.typ != tokenFlowEntry && tok.typ != tokenFlowMappingEnd {
			if err := p.pushState(parseFlowMappingKeyState, tok.span.Start); err != nil {
				return err
			}
			return p.parseNode(event, false, false)
		}
	}
	p.state = parseFlowMappingKeyState
	return p.processEmptyScalar(event, tok.span.Start)
}

// Generate an empty scalar event.
func (p *Parser) processEmptyScalar(event *Event, mark Mark) error {
	*event = Event{
		Type:  ScalarEvent,
		Span:  EmptySpan(mark),
		Style: PlainStyle,
	}
	return nil
}

// EventsString parses in and returns the event stream in the compact trace
// notation used throughout the tests, one event per line.
func EventsString(in []byte, maxDepth int) (string, error) {
	p, err := NewParser(in, maxDepth)
	if err != nil {
		return "", err
	}
	var events strings.Builder
	var event Event
	for {
		if err := p.Parse(&event); err != nil {
			return "", err
		}
		events.WriteString(FormatEvent(&event))
		if event.Type == StreamEndEvent {
			break
		}
		events.WriteByte('\n')
	}
	return events.String(), nil
}

// FormatEvent renders an event in the compact trace notation: `+STR`, `+DOC
// ---`, `+SEQ []`, `=VAL &1 <tag> :value`, `=ALI *1` and so on. Anchors are
// shown by id.
func FormatEvent(e *Event) string {
	var b strings.Builder
	writeProps := func() {
		if e.Anchor > 0 {
			fmt.Fprintf(&b, " &%d", e.Anchor)
		}
		if e.Tag != "" {
			fmt.Fprintf(&b, " <%s>", e.Tag)
		}
	}
	switch e.Type {
	case StreamStartEvent:
		b.WriteString("+STR")
	case StreamEndEvent:
		b.WriteString("-STR")
	case DocumentStartEvent:
		b.WriteString("+DOC")
		if e.Explicit {
			b.WriteString(" ---")
		}
	case DocumentEndEvent:
		b.WriteString("-DOC")
		if e.Explicit {
			b.WriteString(" ...")
		}
	case AliasEvent:
		fmt.Fprintf(&b, "=ALI *%d", e.Anchor)
	case ScalarEvent:
		b.WriteString("=VAL")
		writeProps()
		switch e.Style {
		case PlainStyle:
			b.WriteString(" :")
		case LiteralStyle:
			b.WriteString(" |")
		case FoldedStyle:
			b.WriteString(" >")
		case SingleQuotedStyle:
			b.WriteString(" '")
		case DoubleQuotedStyle:
			b.WriteString(` "`)
		}
		// Escape special characters for consistent event output.
		val := strings.NewReplacer(
			`\`, `\\`,
			"\n", `\n`,
			"\t", `\t`,
		).Replace(e.Value)
		b.WriteString(val)
	case SequenceStartEvent:
		b.WriteString("+SEQ")
		writeProps()
		if e.CollectionStyle == FlowStyle {
			b.WriteString(" []")
		}
	case SequenceEndEvent:
		b.WriteString("-SEQ")
	case MappingStartEvent:
		b.WriteString("+MAP")
		writeProps()
		if e.CollectionStyle == FlowStyle {
			b.WriteString(" {}")
		}
	case MappingEndEvent:
		b.WriteString("-MAP")
	}
	return b.String()
}
