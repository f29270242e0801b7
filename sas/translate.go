package sas

import (
	"fmt"
	"strconv"
	"strings"
)

/*
translate converts the indented text rendering of a binary tree into a
SAS DATA step deriving a DECISION_TREE_<treeID+1> dataset from the
given source table.

The rendering carries no explicit structure: the nesting of a line is
encoded in the column its payload starts at, once the `|` and `-`
connector glyphs are blanked out. The translation is a single forward
pass over the lines that rebuilds the block structure from two pieces
of state:

  - a per-depth occurrence counter that tells a depth's opening branch
    from its sibling: the renderer emits both branches of a split at
    the same depth, so occurrences at a fixed depth alternate strictly
    between the first branch (an IF) and the sibling branch (an
    END;-then-ELSE IF). Leaf lines are terminal rather than branch
    points and must not perturb the alternation, so the counter is
    restored after counting them.
  - a stack of the depths with an open ELSE IF block awaiting its END;.
    Whenever a line sits at a shallower depth than the stack's top, the
    deeper blocks are over: one END; per popped depth is emitted ahead
    of the line, innermost first, until the top is no longer deeper.

Condition lines re-parse their trailing threshold and reformat it in
general notation, and open their block with THEN DO;. Leaf lines become
assignments to the PREDICTED_VALUE_<treeID+1> variable. Lines that
match neither form (and are not blank) yield a MalformedLineError.
*/
func translate(treeID int, table, text string, spacing int) (string, error) {
	skip := strings.Repeat(" ", spacing)
	glyphs := strings.NewReplacer("|", " ", "-", " ")
	var rules strings.Builder
	fmt.Fprintf(&rules, "DATA DECISION_TREE_%d;\n", treeID+1)
	fmt.Fprintf(&rules, "SET %s;\n", table)
	spaceCount := make(map[int]int)
	var openBlocks []int
	for _, raw := range strings.Split(text, "\n") {
		line := glyphs.Replace(strings.TrimRight(raw, " \t"))
		nSpaces := len(line) - len(strings.TrimLeft(line, " "))
		leaf := strings.Contains(line, "class")
		condition := strings.ContainsAny(line, "<>")
		if !condition && !leaf && strings.TrimSpace(line) != "" {
			return "", &MalformedLineError{Line: raw}
		}
		spaceCount[nSpaces]++
		if leaf {
			spaceCount[nSpaces]--
		}
		frontAdd := rolePrefix(spaceCount[nSpaces], nSpaces)
		var endFront string
		for len(openBlocks) > 0 && nSpaces < openBlocks[len(openBlocks)-1] {
			endFront += "END;\n"
			openBlocks = openBlocks[:len(openBlocks)-1]
		}
		if strings.Contains(frontAdd, "ELSE") && !leaf {
			openBlocks = append(openBlocks, nSpaces)
		}
		if condition {
			rest, value, ok := splitThreshold(line)
			if !ok {
				return "", &MalformedLineError{Line: raw}
			}
			threshold, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return "", &MalformedLineError{Line: raw}
			}
			line = fmt.Sprintf("%s%s%s %.6g THEN DO;", rest[:nSpaces], frontAdd, rest[nSpaces:], threshold)
		}
		if leaf {
			assignment := fmt.Sprintf("PREDICTED_VALUE_%d =", treeID+1)
			line = strings.Replace(line, "class:", assignment, 1) + ";"
		}
		rules.WriteString(skip)
		rules.WriteString(endFront)
		rules.WriteString(line)
		rules.WriteByte('\n')
	}
	return strings.TrimSuffix(rules.String(), "\n") + "RUN;", nil
}

/*
rolePrefix returns the string to insert before a condition line given
the occurrence count at its depth: an odd count means the line opens
the first branch at this depth and gets a plain IF, whereas an even
count means the line is the sibling branch, so the block of the first
one is terminated and an ELSE IF is opened two columns deeper.
*/
func rolePrefix(count, nSpaces int) string {
	if count%2 == 0 {
		return "END;\n" + strings.Repeat(" ", nSpaces+2) + "ELSE IF "
	}
	return "IF "
}

/*
splitThreshold splits a condition line into everything up to its
comparison operator and the trailing threshold literal.
*/
func splitThreshold(line string) (rest, value string, ok bool) {
	trimmed := strings.TrimRight(line, " ")
	i := strings.LastIndex(trimmed, " ")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimRight(trimmed[:i], " "), trimmed[i+1:], true
}
