package step

import (
	"testing"

	apperrors "github.com/arx-os/ifclite/internal/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = `ISO-10303-21;
HEADER;
ENDSEC;
DATA;
`

func TestTokenizeSimpleEntities(t *testing.T) {
	src := []byte(sampleHeader + `#1=IFCPROJECT('guid',$,'Project',$,$,$,$,$,$);
#2 = IFCWALL ( 'guid2' , $ , 'Wall' ) ;
ENDSEC;
END-ISO-10303-21;`)

	tok := New(src)
	var refs []EntityRef
	for {
		ref, ok, err := tok.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		refs = append(refs, ref)
	}

	require.Len(t, refs, 2)
	assert.Equal(t, uint32(1), refs[0].ExpressID)
	assert.Equal(t, "IFCPROJECT", refs[0].TypeName)
	assert.Equal(t, uint32(2), refs[1].ExpressID)
	assert.Equal(t, "IFCWALL", refs[1].TypeName)
}

func TestTokenizeArgsByteRange(t *testing.T) {
	src := []byte(sampleHeader + `#1=IFCWALL('a','b');
ENDSEC;`)
	tok := New(src)
	ref, ok, err := tok.Next()
	require.NoError(t, err)
	require.True(t, ok)
	args := ref.Args(src)
	assert.Equal(t, byte('('), args[0])
	assert.Equal(t, byte(')'), args[len(args)-1])
}

func TestTokenizeStringWithEscapedQuote(t *testing.T) {
	src := []byte(sampleHeader + `#1=IFCWALL('it''s a wall');
ENDSEC;`)
	tok := New(src)
	ref, ok, err := tok.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "IFCWALL", ref.TypeName)
}

func TestTokenizeParenInsideString(t *testing.T) {
	src := []byte(sampleHeader + `#1=IFCWALL('has (parens) inside');
ENDSEC;`)
	tok := New(src)
	ref, ok, err := tok.Next()
	require.NoError(t, err)
	require.True(t, ok)
	args := string(ref.Args(src))
	assert.Contains(t, args, "has (parens) inside")
}

func TestTokenizeSkipsComments(t *testing.T) {
	src := []byte(sampleHeader + `/* a comment with ) in it */
#1=IFCWALL('a');
ENDSEC;`)
	tok := New(src)
	ref, ok, err := tok.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(1), ref.ExpressID)
}

func TestTokenizeTruncatedUnbalanced(t *testing.T) {
	src := []byte(sampleHeader + `#1=IFCWALL('a'`)
	tok := New(src)
	_, _, err := tok.Next()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeTruncated, appErr.Code)
	assert.True(t, appErr.Fatal())
}

func TestTokenizeMissingDataSection(t *testing.T) {
	src := []byte("ISO-10303-21;\nHEADER;\nENDSEC;\n")
	tok := New(src)
	_, _, err := tok.Next()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStep, appErr.Code)
}

func TestTokenizeEmptyDataSection(t *testing.T) {
	src := []byte(sampleHeader + "ENDSEC;\nEND-ISO-10303-21;")
	tok := New(src)
	_, ok, err := tok.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenizeSourceOrderPreserved(t *testing.T) {
	src := []byte(sampleHeader + `#5=IFCWALL('a');
#2=IFCSLAB('b');
#9=IFCWALL('c');
ENDSEC;`)
	tok := New(src)
	var ids []uint32
	for {
		ref, ok, err := tok.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		ids = append(ids, ref.ExpressID)
	}
	assert.Equal(t, []uint32{5, 2, 9}, ids)
}
