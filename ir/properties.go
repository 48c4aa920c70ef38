package ir

// StructIdentifier constants for the builtin vector/matrix structs and the
// two context structs every module is allowed to reference.
var (
	StructVector2 = NewStructIdentifier("Vector2")
	StructVector3 = NewStructIdentifier("Vector3")
	StructVector4 = NewStructIdentifier("Vector4")
	StructMatrix2 = NewStructIdentifier("Matrix2")
	StructMatrix3 = NewStructIdentifier("Matrix3")
	StructMatrix4 = NewStructIdentifier("Matrix4")
	StructContext = NewStructIdentifier("Context")
	StructCombineContext = NewStructIdentifier("CombineContext")
)

// Vector and matrix component field identifiers, shared across every
// Vector2/3/4 and Matrix2/3/4 instance.
var (
	PropX = newPropertyIdentifier("X")
	PropY = newPropertyIdentifier("Y")
	PropZ = newPropertyIdentifier("Z")
	PropW = newPropertyIdentifier("W")

	PropXAxis = newPropertyIdentifier("X_AXIS")
	PropYAxis = newPropertyIdentifier("Y_AXIS")
	PropZAxis = newPropertyIdentifier("Z_AXIS")
	PropWAxis = newPropertyIdentifier("W_AXIS")
)

// Canonical domain properties.
var (
	PropPosition2D = newPropertyIdentifier("POSITION_2D")
	PropPosition3D = newPropertyIdentifier("POSITION_3D")
	PropTime = newPropertyIdentifier("TIME")
	PropDistance = newPropertyIdentifier("DISTANCE")
	PropGradient2D = newPropertyIdentifier("GRADIENT_2D")
	PropGradient3D = newPropertyIdentifier("GRADIENT_3D")
	PropNormal = newPropertyIdentifier("NORMAL")
	PropUV = newPropertyIdentifier("UV")
	PropTangent2D = newPropertyIdentifier("TANGENT_2D")
	PropTangent3D = newPropertyIdentifier("TANGENT_3D")
	PropColor = newPropertyIdentifier("COLOR")
	PropLight = newPropertyIdentifier("LIGHT")
	PropSupport2D = newPropertyIdentifier("SUPPORT_2D")
	PropSupport3D = newPropertyIdentifier("SUPPORT_3D")
	PropError = newPropertyIdentifier("ERROR")
	PropRepeatID2D = newPropertyIdentifier("REPEAT_ID_2D")
	PropRepeatID3D = newPropertyIdentifier("REPEAT_ID_3D")
	PropCellID = newPropertyIdentifier("CELL_ID")
	PropAspect = newPropertyIdentifier("ASPECT")
	PropNum = newPropertyIdentifier("NUM")
	PropVect = newPropertyIdentifier("VECT")
	PropLeft = newPropertyIdentifier("LEFT")
	PropRight = newPropertyIdentifier("RIGHT")
	PropOut = newPropertyIdentifier("OUT")
	PropK = newPropertyIdentifier("K")

	// PropContext is the reserved identifier denoting the enclosing
	// function's input-argument struct when used as the first path
	// segment of an ExprRead/StmtWrite.
	PropContext = newPropertyIdentifier("CONTEXT")
	// PropCombineContext denotes the implicit combinator context argument.
	PropCombineContext = newPropertyIdentifier("COMBINE_CONTEXT")
)

// NewLocalProperty builds a PropertyIdentifier for a scratch local binding.
// Unlike canonical domain properties it is not added to the registry: its
// type is carried by the environment (ir.Locals) that introduced it.
func NewLocalProperty(name string) PropertyIdentifier {
	return newPropertyIdentifier(name)
}

func vec(id StructIdentifier) Type { return StructTypeRef{Struct: id} }

// BuiltinProperties returns the canonical property set declared by,
// contributed to the global registry at init time.
func BuiltinProperties() []Property {
	f := NumberType{Kind: NumberFloat}
	u := NumberType{Kind: NumberUInt}
	return []Property{
		{PropPosition2D, vec(StructVector2)},
		{PropPosition3D, vec(StructVector3)},
		{PropTime, f},
		{PropDistance, f},
		{PropGradient2D, vec(StructVector2)},
		{PropGradient3D, vec(StructVector3)},
		{PropNormal, vec(StructVector3)},
		{PropUV, vec(StructVector2)},
		{PropTangent2D, vec(StructVector2)},
		{PropTangent3D, vec(StructVector3)},
		{PropColor, vec(StructVector4)},
		{PropLight, vec(StructVector3)},
		{PropSupport2D, vec(StructVector2)},
		{PropSupport3D, vec(StructVector3)},
		{PropError, f},
		{PropRepeatID2D, vec(StructVector2)},
		{PropRepeatID3D, vec(StructVector3)},
		{PropCellID, u},
		{PropAspect, f},
		{PropNum, f},
		{PropVect, vec(StructVector3)},
		{PropLeft, StructTypeRef{Struct: StructContext}},
		{PropRight, StructTypeRef{Struct: StructContext}},
		{PropOut, StructTypeRef{Struct: StructContext}},
		{PropK, f},
		{PropX, f},
		{PropY, f},
		{PropZ, f},
		{PropW, f},
		{PropContext, StructTypeRef{Struct: StructContext}},
		{PropCombineContext, StructTypeRef{Struct: StructCombineContext}},
	}
}

func init() {
	RegisterProperties(BuiltinProperties()...)
}

// vectorStructDefinition builds the StructDefinition for one of
// Vector2/3/4: public, with X,Y[,Z[,W]] Float fields.
func vectorStructDefinition(id StructIdentifier, arity int) StructDefinition {
	names := []PropertyIdentifier{PropX, PropY, PropZ, PropW}
	fields := make([]FieldDefinition, arity)
	for i := 0; i < arity; i++ {
		fields[i] = FieldDefinition{ID: names[i], Public: true}
	}
	return StructDefinition{ID: id, Public: true, Fields: fields}
}

// matrixStructDefinition builds the StructDefinition for one of
// Matrix2/3/4: public, with X_AXIS,Y_AXIS[,Z_AXIS[,W_AXIS]] vector fields.
func matrixStructDefinition(id StructIdentifier, arity int) StructDefinition {
	names := []PropertyIdentifier{PropXAxis, PropYAxis, PropZAxis, PropWAxis}
	fields := make([]FieldDefinition, arity)
	for i := 0; i < arity; i++ {
		fields[i] = FieldDefinition{ID: names[i], Public: true}
	}
	return StructDefinition{ID: id, Public: true, Fields: fields}
}

// BuiltinStructs returns the Vector2/3/4 and Matrix2/3/4 struct
// definitions every finalized Module is prepended with, plus the CombineContext struct combinators thread between
// sub-combinators.
func BuiltinStructs() []StructDefinition {
	return []StructDefinition{
		vectorStructDefinition(StructVector2, 2),
		vectorStructDefinition(StructVector3, 3),
		vectorStructDefinition(StructVector4, 4),
		matrixStructDefinition(StructMatrix2, 2),
		matrixStructDefinition(StructMatrix3, 3),
		matrixStructDefinition(StructMatrix4, 4),
		combineContextStructDefinition(),
	}
}

// combineContextStructDefinition builds the CombineContext struct: left,
// right and out, each itself a Context-typed struct value.
func combineContextStructDefinition() StructDefinition {
	return StructDefinition{
		ID: StructCombineContext,
		Public: true,
		Fields: []FieldDefinition{
			{ID: PropLeft, Public: true},
			{ID: PropRight, Public: true},
			{ID: PropOut, Public: true},
		},
	}
}

// NewVector2/3/4 build Vector struct values from float components.
func NewVector2(x, y float64) Value {
	m := NewPropertyValueMap()
	m.Set(PropX, Float(x))
	m.Set(PropY, Float(y))
	return StructValue{ID: StructVector2, Members: m}
}

func NewVector3(x, y, z float64) Value {
	m := NewPropertyValueMap()
	m.Set(PropX, Float(x))
	m.Set(PropY, Float(y))
	m.Set(PropZ, Float(z))
	return StructValue{ID: StructVector3, Members: m}
}

func NewVector4(x, y, z, w float64) Value {
	m := NewPropertyValueMap()
	m.Set(PropX, Float(x))
	m.Set(PropY, Float(y))
	m.Set(PropZ, Float(z))
	m.Set(PropW, Float(w))
	return StructValue{ID: StructVector4, Members: m}
}

// VectorComponents returns a vector value's components as float64, in
// canonical X,Y[,Z[,W]] order.
func VectorComponents(v Value) ([]float64, error) {
	return components(v)
}
