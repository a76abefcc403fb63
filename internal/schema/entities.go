package schema

// This file is the hand-authored, generated-style static entity table.
// No code generator was run against the EXPRESS schema text for this
// target; the table below was written by hand following the same
// name/supertype/attribute shape a generator would emit, covering every
// entity named in spec §4.8/§4.9 plus the spatial, unit, and relationship
// entities C6-C8 need.

func a(name, typ string, optional bool) Attr {
	return Attr{Name: name, Type: typ, Optional: optional, Agg: AggNone}
}

func al(name, typ string, optional bool, lo, hi int) Attr {
	return Attr{Name: name, Type: typ, Optional: optional, Agg: AggList, Lo: lo, Hi: hi}
}

func als(name, typ string, optional bool, lo, hi int, nested Aggregation) Attr {
	return Attr{Name: name, Type: typ, Optional: optional, Agg: AggList, Lo: lo, Hi: hi, Nested: nested}
}

func def(name, supertype string, abstract bool, attrs ...Attr) *EntityDef {
	return &EntityDef{Name: Canonical(name), Supertype: Canonical(supertype), Abstract: abstract, Attributes: attrs}
}

func build() *Registry {
	r := &Registry{
		entities: make(map[string]*EntityDef),
		enums:    make(map[string][]string),
		selects:  make(map[string][]string),
	}

	add := func(d *EntityDef) { r.entities[d.Name] = d }

	// --- root / kernel ---
	add(def("IfcRoot", "", true,
		a("GlobalId", "IfcGloballyUniqueId", false),
		a("OwnerHistory", "IfcOwnerHistory", true),
		a("Name", "IfcLabel", true),
		a("Description", "IfcText", true),
	))
	add(def("IfcObjectDefinition", "IfcRoot", true))
	add(def("IfcObject", "IfcObjectDefinition", true,
		a("ObjectType", "IfcLabel", true),
	))
	add(def("IfcProduct", "IfcObject", true,
		a("ObjectPlacement", "IfcObjectPlacement", true),
		a("Representation", "IfcProductRepresentation", true),
	))
	add(def("IfcElement", "IfcProduct", true,
		a("Tag", "IfcIdentifier", true),
	))
	add(def("IfcSpatialStructureElement", "IfcProduct", true,
		a("LongName", "IfcLabel", true),
		a("CompositionType", "IfcElementCompositionEnum", true),
	))
	add(def("IfcTypeObject", "IfcObjectDefinition", true,
		a("ApplicableOccurrence", "IfcIdentifier", true),
		al("HasPropertySets", "IfcPropertySetDefinition", true, 1, -1),
	))

	// --- spatial hierarchy ---
	add(def("IfcProject", "IfcObject", false,
		a("LongName", "IfcLabel", true),
		a("Phase", "IfcLabel", true),
		al("RepresentationContexts", "IfcRepresentationContext", true, 1, -1),
		a("UnitsInContext", "IfcUnitAssignment", true),
	))
	add(def("IfcSite", "IfcSpatialStructureElement", false,
		a("RefLatitude", "IfcCompoundPlaneAngleMeasure", true),
		a("RefLongitude", "IfcCompoundPlaneAngleMeasure", true),
		a("RefElevation", "IfcLengthMeasure", true),
		a("LandTitleNumber", "IfcLabel", true),
		a("SiteAddress", "IfcPostalAddress", true),
	))
	add(def("IfcBuilding", "IfcSpatialStructureElement", false,
		a("ElevationOfRefHeight", "IfcLengthMeasure", true),
		a("ElevationOfTerrain", "IfcLengthMeasure", true),
		a("BuildingAddress", "IfcPostalAddress", true),
	))
	add(def("IfcBuildingStorey", "IfcSpatialStructureElement", false,
		a("Elevation", "IfcLengthMeasure", true),
	))
	add(def("IfcSpace", "IfcSpatialStructureElement", false,
		a("PredefinedType", "IfcSpaceTypeEnum", true),
	))

	// --- elements ---
	add(def("IfcWall", "IfcElement", false,
		a("PredefinedType", "IfcWallTypeEnum", true),
	))
	add(def("IfcWallStandardCase", "IfcWall", false))
	add(def("IfcSlab", "IfcElement", false,
		a("PredefinedType", "IfcSlabTypeEnum", true),
	))
	add(def("IfcColumn", "IfcElement", false,
		a("PredefinedType", "IfcColumnTypeEnum", true),
	))
	add(def("IfcBeam", "IfcElement", false,
		a("PredefinedType", "IfcBeamTypeEnum", true),
	))
	add(def("IfcDoor", "IfcElement", false,
		a("OverallHeight", "IfcPositiveLengthMeasure", true),
		a("OverallWidth", "IfcPositiveLengthMeasure", true),
		a("PredefinedType", "IfcDoorTypeEnum", true),
	))
	add(def("IfcWindow", "IfcElement", false,
		a("OverallHeight", "IfcPositiveLengthMeasure", true),
		a("OverallWidth", "IfcPositiveLengthMeasure", true),
		a("PredefinedType", "IfcWindowTypeEnum", true),
	))
	add(def("IfcOpeningElement", "IfcElement", false,
		a("PredefinedType", "IfcOpeningElementTypeEnum", true),
	))
	add(def("IfcMember", "IfcElement", false,
		a("PredefinedType", "IfcMemberTypeEnum", true),
	))
	add(def("IfcRoof", "IfcElement", false,
		a("PredefinedType", "IfcRoofTypeEnum", true),
	))
	add(def("IfcRailing", "IfcElement", false,
		a("PredefinedType", "IfcRailingTypeEnum", true),
	))
	add(def("IfcFurnishingElement", "IfcElement", false))
	add(def("IfcBuildingElementProxy", "IfcElement", false,
		a("CompositionType", "IfcElementCompositionEnum", true),
	))

	// --- relationships ---
	add(def("IfcRelationship", "IfcRoot", true))
	add(def("IfcRelDecomposes", "IfcRelationship", true))
	add(def("IfcRelAggregates", "IfcRelDecomposes", false,
		a("RelatingObject", "IfcObjectDefinition", false),
		al("RelatedObjects", "IfcObjectDefinition", false, 1, -1),
	))
	add(def("IfcRelConnects", "IfcRelationship", true))
	add(def("IfcRelContainedInSpatialStructure", "IfcRelConnects", false,
		al("RelatedElements", "IfcProduct", false, 1, -1),
		a("RelatingStructure", "IfcSpatialStructureElement", false),
	))
	add(def("IfcRelReferencedInSpatialStructure", "IfcRelConnects", false,
		al("RelatedElements", "IfcProduct", false, 1, -1),
		a("RelatingStructure", "IfcSpatialStructureElement", false),
	))
	add(def("IfcRelDefinesByProperties", "IfcRelDecomposes", false,
		al("RelatedObjects", "IfcObjectDefinition", false, 1, -1),
		a("RelatingPropertyDefinition", "IfcPropertySetDefinition", false),
	))
	add(def("IfcRelDefinesByType", "IfcRelDecomposes", false,
		al("RelatedObjects", "IfcObjectDefinition", false, 1, -1),
		a("RelatingType", "IfcTypeObject", false),
	))
	add(def("IfcRelAssociates", "IfcRelationship", true,
		al("RelatedObjects", "IfcDefinitionSelect", false, 1, -1),
	))
	add(def("IfcRelAssociatesMaterial", "IfcRelAssociates", false,
		a("RelatingMaterial", "IfcMaterialSelect", false),
	))
	add(def("IfcRelAssociatesClassification", "IfcRelAssociates", false,
		a("RelatingClassification", "IfcClassificationSelect", false),
	))
	add(def("IfcRelVoidsElement", "IfcRelDecomposes", false,
		a("RelatingBuildingElement", "IfcElement", false),
		a("RelatedOpeningElement", "IfcFeatureElementSubtraction", false),
	))
	add(def("IfcRelFillsElement", "IfcRelConnects", false,
		a("RelatingOpeningElement", "IfcOpeningElement", false),
		a("RelatedBuildingElement", "IfcElement", false),
	))
	add(def("IfcRelConnectsPathElements", "IfcRelConnects", false,
		al("RelatingPriorities", "IfcInteger", false, 0, -1),
		al("RelatedPriorities", "IfcInteger", false, 0, -1),
		a("RelatedConnectionType", "IfcConnectionTypeEnum", false),
		a("RelatingConnectionType", "IfcConnectionTypeEnum", false),
		a("RelatingElement", "IfcElement", false),
		a("RelatedElement", "IfcElement", false),
	))
	add(def("IfcRelConnectsElements", "IfcRelConnects", false,
		a("RelatingElement", "IfcElement", false),
		a("RelatedElement", "IfcElement", false),
	))
	add(def("IfcRelSpaceBoundary", "IfcRelConnects", false,
		a("RelatingSpace", "IfcSpatialStructureElement", false),
		a("RelatedBuildingElement", "IfcElement", true),
		a("PhysicalOrVirtualBoundary", "IfcPhysicalOrVirtualEnum", false),
	))
	add(def("IfcRelAssignsToGroup", "IfcRelAssigns", false,
		a("RelatingGroup", "IfcGroup", false),
	))
	add(def("IfcRelAssigns", "IfcRelationship", true,
		al("RelatedObjects", "IfcObjectDefinition", false, 1, -1),
	))
	add(def("IfcRelAssignsToProduct", "IfcRelAssigns", false,
		a("RelatingProduct", "IfcProductSelect", false),
	))

	// --- placement ---
	add(def("IfcObjectPlacement", "", true))
	add(def("IfcLocalPlacement", "IfcObjectPlacement", false,
		a("PlacementRelTo", "IfcObjectPlacement", true),
		a("RelativePlacement", "IfcAxis2Placement", false),
	))
	add(def("IfcAxis2Placement3D", "", false,
		a("Location", "IfcCartesianPoint", false),
		a("Axis", "IfcDirection", true),
		a("RefDirection", "IfcDirection", true),
	))
	add(def("IfcAxis2Placement2D", "", false,
		a("Location", "IfcCartesianPoint", false),
		a("RefDirection", "IfcDirection", true),
	))
	add(def("IfcCartesianPoint", "", false,
		al("Coordinates", "IfcLengthMeasure", false, 1, 3),
	))
	add(def("IfcDirection", "", false,
		al("DirectionRatios", "IfcReal", false, 2, 3),
	))

	// --- units ---
	add(def("IfcUnitAssignment", "", false,
		al("Units", "IfcUnit", false, 1, -1),
	))
	add(def("IfcSIUnit", "", false,
		a("UnitType", "IfcUnitEnum", false),
		a("Prefix", "IfcSIPrefix", true),
		a("Name", "IfcSIUnitName", false),
	))
	add(def("IfcConversionBasedUnit", "", false,
		a("Dimensions", "IfcDimensionalExponents", false),
		a("UnitType", "IfcUnitEnum", false),
		a("Name", "IfcLabel", false),
		a("ConversionFactor", "IfcMeasureWithUnit", false),
	))
	add(def("IfcMeasureWithUnit", "", false,
		a("ValueComponent", "IfcValue", false),
		a("UnitComponent", "IfcUnit", false),
	))

	// --- geometry container ---
	add(def("IfcProductRepresentation", "", true,
		a("Name", "IfcLabel", true),
		a("Description", "IfcText", true),
		al("Representations", "IfcRepresentation", false, 1, -1),
	))
	add(def("IfcProductDefinitionShape", "IfcProductRepresentation", false))
	add(def("IfcRepresentation", "", true,
		a("ContextOfItems", "IfcRepresentationContext", false),
		a("RepresentationIdentifier", "IfcLabel", true),
		a("RepresentationType", "IfcLabel", true),
		al("Items", "IfcRepresentationItem", false, 1, -1),
	))
	add(def("IfcShapeRepresentation", "IfcRepresentation", false))
	add(def("IfcRepresentationItem", "", true))
	add(def("IfcRepresentationMap", "", false,
		a("MappingOrigin", "IfcAxis2Placement", false),
		a("MappedRepresentation", "IfcRepresentation", false),
	))

	// --- solids / items ---
	add(def("IfcSolidModel", "IfcRepresentationItem", true))
	add(def("IfcSweptAreaSolid", "IfcSolidModel", true,
		a("SweptArea", "IfcProfileDef", false),
		a("Position", "IfcAxis2Placement3D", true),
	))
	add(def("IfcExtrudedAreaSolid", "IfcSweptAreaSolid", false,
		a("ExtrudedDirection", "IfcDirection", false),
		a("Depth", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcRevolvedAreaSolid", "IfcSweptAreaSolid", false,
		a("Axis", "IfcAxis1Placement", false),
		a("Angle", "IfcPlaneAngleMeasure", false),
	))
	add(def("IfcManifoldSolidBrep", "IfcSolidModel", true,
		a("Outer", "IfcClosedShell", false),
	))
	add(def("IfcFacetedBrep", "IfcManifoldSolidBrep", false))
	add(def("IfcConnectedFaceSet", "IfcRepresentationItem", true,
		al("CfsFaces", "IfcFace", false, 1, -1),
	))
	add(def("IfcClosedShell", "IfcConnectedFaceSet", false))
	add(def("IfcOpenShell", "IfcConnectedFaceSet", false))
	add(def("IfcFace", "IfcRepresentationItem", false,
		al("Bounds", "IfcFaceBound", false, 1, -1),
	))
	add(def("IfcFaceBound", "IfcRepresentationItem", false,
		a("Bound", "IfcLoop", false),
		a("Orientation", "IfcBoolean", false),
	))
	add(def("IfcFaceOuterBound", "IfcFaceBound", false))
	add(def("IfcLoop", "IfcRepresentationItem", true))
	add(def("IfcPolyLoop", "IfcLoop", false,
		al("Polygon", "IfcCartesianPoint", false, 3, -1),
	))
	add(def("IfcTessellatedItem", "IfcRepresentationItem", true))
	add(def("IfcTessellatedFaceSet", "IfcTessellatedItem", true,
		a("Coordinates", "IfcCartesianPointList3D", false),
	))
	add(def("IfcTriangulatedFaceSet", "IfcTessellatedFaceSet", false,
		a("Normals", "IfcParameterValue", true),
		a("Closed", "IfcBoolean", true),
		als("CoordIndex", "IfcPositiveInteger", false, 1, -1, AggList),
		al("PnIndex", "IfcPositiveInteger", true, 1, -1),
	))
	add(def("IfcPolygonalFaceSet", "IfcTessellatedFaceSet", false,
		al("Faces", "IfcIndexedPolygonalFace", false, 1, -1),
		al("PnIndex", "IfcPositiveInteger", true, 1, -1),
	))
	add(def("IfcSweptDiskSolid", "IfcSolidModel", false,
		a("Directrix", "IfcCurve", false),
		a("Radius", "IfcPositiveLengthMeasure", false),
		a("InnerRadius", "IfcPositiveLengthMeasure", true),
		a("StartParam", "IfcParameterValue", true),
		a("EndParam", "IfcParameterValue", true),
	))
	add(def("IfcSurface", "IfcGeometricRepresentationItem", true))
	add(def("IfcPlane", "IfcSurface", false,
		a("Position", "IfcAxis2Placement3D", false),
	))
	add(def("IfcHalfSpaceSolid", "IfcGeometricRepresentationItem", false,
		a("BaseSurface", "IfcSurface", false),
		a("AgreementFlag", "IfcBoolean", false),
	))
	add(def("IfcPolygonalBoundedHalfSpace", "IfcHalfSpaceSolid", false,
		a("Position", "IfcAxis2Placement3D", false),
		a("PolygonalBoundary", "IfcBoundedCurve", false),
	))
	add(def("IfcBooleanResult", "IfcGeometricRepresentationItem", false,
		a("Operator", "IfcBooleanOperator", false),
		a("FirstOperand", "IfcBooleanOperand", false),
		a("SecondOperand", "IfcBooleanOperand", false),
	))
	add(def("IfcBooleanClippingResult", "IfcBooleanResult", false))
	add(def("IfcGeometricRepresentationItem", "IfcRepresentationItem", true))
	add(def("IfcMappedItem", "IfcRepresentationItem", false,
		a("MappingSource", "IfcRepresentationMap", false),
		a("MappingTarget", "IfcCartesianTransformationOperator", false),
	))

	// --- profiles ---
	add(def("IfcProfileDef", "", true,
		a("ProfileType", "IfcProfileTypeEnum", false),
		a("ProfileName", "IfcLabel", true),
	))
	add(def("IfcParameterizedProfileDef", "IfcProfileDef", true,
		a("Position", "IfcAxis2Placement2D", true),
	))
	add(def("IfcRectangleProfileDef", "IfcParameterizedProfileDef", false,
		a("XDim", "IfcPositiveLengthMeasure", false),
		a("YDim", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcRectangleHollowProfileDef", "IfcRectangleProfileDef", false,
		a("WallThickness", "IfcPositiveLengthMeasure", false),
		a("InnerFilletRadius", "IfcPositiveLengthMeasure", true),
		a("OuterFilletRadius", "IfcPositiveLengthMeasure", true),
	))
	add(def("IfcCircleProfileDef", "IfcParameterizedProfileDef", false,
		a("Radius", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcCircleHollowProfileDef", "IfcCircleProfileDef", false,
		a("WallThickness", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcEllipseProfileDef", "IfcParameterizedProfileDef", false,
		a("SemiAxis1", "IfcPositiveLengthMeasure", false),
		a("SemiAxis2", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcIShapeProfileDef", "IfcParameterizedProfileDef", false,
		a("OverallWidth", "IfcPositiveLengthMeasure", false),
		a("OverallDepth", "IfcPositiveLengthMeasure", false),
		a("WebThickness", "IfcPositiveLengthMeasure", false),
		a("FlangeThickness", "IfcPositiveLengthMeasure", false),
		a("FilletRadius", "IfcNonNegativeLengthMeasure", true),
	))
	add(def("IfcLShapeProfileDef", "IfcParameterizedProfileDef", false,
		a("Depth", "IfcPositiveLengthMeasure", false),
		a("Width", "IfcPositiveLengthMeasure", true),
		a("Thickness", "IfcPositiveLengthMeasure", false),
		a("FilletRadius", "IfcNonNegativeLengthMeasure", true),
		a("EdgeRadius", "IfcNonNegativeLengthMeasure", true),
		a("LegSlope", "IfcPlaneAngleMeasure", true),
	))
	add(def("IfcTShapeProfileDef", "IfcParameterizedProfileDef", false,
		a("Depth", "IfcPositiveLengthMeasure", false),
		a("FlangeWidth", "IfcPositiveLengthMeasure", false),
		a("WebThickness", "IfcPositiveLengthMeasure", false),
		a("FlangeThickness", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcUShapeProfileDef", "IfcParameterizedProfileDef", false,
		a("Depth", "IfcPositiveLengthMeasure", false),
		a("FlangeWidth", "IfcPositiveLengthMeasure", false),
		a("WebThickness", "IfcPositiveLengthMeasure", false),
		a("FlangeThickness", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcZShapeProfileDef", "IfcParameterizedProfileDef", false,
		a("Depth", "IfcPositiveLengthMeasure", false),
		a("FlangeWidth", "IfcPositiveLengthMeasure", false),
		a("WebThickness", "IfcPositiveLengthMeasure", false),
		a("FlangeThickness", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcCShapeProfileDef", "IfcParameterizedProfileDef", false,
		a("Depth", "IfcPositiveLengthMeasure", false),
		a("Width", "IfcPositiveLengthMeasure", false),
		a("WallThickness", "IfcPositiveLengthMeasure", false),
		a("Girth", "IfcPositiveLengthMeasure", false),
	))
	add(def("IfcTrapeziumProfileDef", "IfcParameterizedProfileDef", false,
		a("BottomXDim", "IfcPositiveLengthMeasure", false),
		a("TopXDim", "IfcPositiveLengthMeasure", false),
		a("YDim", "IfcPositiveLengthMeasure", false),
		a("TopXOffset", "IfcLengthMeasure", false),
	))
	add(def("IfcArbitraryClosedProfileDef", "IfcProfileDef", false,
		a("OuterCurve", "IfcCurve", false),
	))
	add(def("IfcArbitraryProfileDefWithVoids", "IfcArbitraryClosedProfileDef", false,
		al("InnerCurves", "IfcCurve", false, 1, -1),
	))
	add(def("IfcDerivedProfileDef", "IfcProfileDef", false,
		a("ParentProfile", "IfcProfileDef", false),
		a("Operator", "IfcCartesianTransformationOperator2D", false),
		a("Label", "IfcLabel", true),
	))
	add(def("IfcCompositeProfileDef", "IfcProfileDef", false,
		al("Profiles", "IfcProfileDef", false, 2, -1),
		a("Label", "IfcLabel", true),
	))
	add(def("IfcCartesianTransformationOperator2D", "", false,
		a("Axis1", "IfcDirection", true),
		a("Axis2", "IfcDirection", true),
		a("LocalOrigin", "IfcCartesianPoint", false),
		a("Scale", "IfcReal", true),
	))
	add(def("IfcCartesianTransformationOperator3D", "", false,
		a("Axis1", "IfcDirection", true),
		a("Axis2", "IfcDirection", true),
		a("LocalOrigin", "IfcCartesianPoint", false),
		a("Scale", "IfcReal", true),
		a("Axis3", "IfcDirection", true),
	))

	// --- curves ---
	add(def("IfcCurve", "IfcGeometricRepresentationItem", true))
	add(def("IfcPolyline", "IfcCurve", false,
		al("Points", "IfcCartesianPoint", false, 2, -1),
	))
	add(def("IfcCompositeCurve", "IfcCurve", false,
		al("Segments", "IfcCompositeCurveSegment", false, 1, -1),
		a("SelfIntersect", "IfcLogical", false),
	))
	add(def("IfcCompositeCurveSegment", "", false,
		a("Transition", "IfcTransitionCode", false),
		a("SameSense", "IfcBoolean", false),
		a("ParentCurve", "IfcCurve", false),
	))
	add(def("IfcAxis1Placement", "", false,
		a("Location", "IfcCartesianPoint", false),
		a("Axis", "IfcDirection", true),
	))
	add(def("IfcCartesianPointList3D", "", false,
		als("CoordList", "IfcLengthMeasure", false, 1, -1, AggList),
	))
	add(def("IfcIndexedPolygonalFace", "", true,
		al("CoordIndex", "IfcPositiveInteger", false, 3, -1),
	))

	// --- style / color ---
	add(def("IfcStyledItem", "IfcRepresentationItem", false,
		a("Item", "IfcRepresentationItem", true),
		al("Styles", "IfcPresentationStyle", false, 1, -1),
		a("Name", "IfcLabel", true),
	))
	add(def("IfcSurfaceStyle", "IfcPresentationStyle", false,
		a("Side", "IfcSurfaceSide", false),
		al("Styles", "IfcSurfaceStyleElementSelect", false, 1, 5),
	))
	add(def("IfcPresentationStyle", "", true,
		a("Name", "IfcLabel", true),
	))
	add(def("IfcSurfaceStyleRendering", "IfcSurfaceStyleShading", false,
		a("Transparency", "IfcNormalisedRatioMeasure", true),
	))
	add(def("IfcSurfaceStyleShading", "IfcPresentationStyle", true,
		a("SurfaceColour", "IfcColourRgb", false),
	))
	add(def("IfcColourRgb", "", false,
		a("Name", "IfcLabel", true),
		a("Red", "IfcNormalisedRatioMeasure", false),
		a("Green", "IfcNormalisedRatioMeasure", false),
		a("Blue", "IfcNormalisedRatioMeasure", false),
	))

	// --- property / quantity sets ---
	add(def("IfcPropertySetDefinition", "IfcPropertyDefinition", true))
	add(def("IfcPropertyDefinition", "IfcRoot", true))
	add(def("IfcPropertySet", "IfcPropertySetDefinition", false,
		al("HasProperties", "IfcProperty", false, 1, -1),
	))
	add(def("IfcProperty", "", true,
		a("Name", "IfcIdentifier", false),
		a("Description", "IfcText", true),
	))
	add(def("IfcPropertySingleValue", "IfcProperty", false,
		a("NominalValue", "IfcValue", true),
		a("Unit", "IfcUnit", true),
	))
	add(def("IfcElementQuantity", "IfcPropertySetDefinition", false,
		a("MethodOfMeasurement", "IfcLabel", true),
		al("Quantities", "IfcPhysicalQuantity", false, 1, -1),
	))
	add(def("IfcPhysicalQuantity", "", true,
		a("Name", "IfcLabel", false),
		a("Description", "IfcText", true),
	))
	add(def("IfcQuantityLength", "IfcPhysicalSimpleQuantity", false,
		a("LengthValue", "IfcLengthMeasure", false),
	))
	add(def("IfcQuantityArea", "IfcPhysicalSimpleQuantity", false,
		a("AreaValue", "IfcAreaMeasure", false),
	))
	add(def("IfcQuantityVolume", "IfcPhysicalSimpleQuantity", false,
		a("VolumeValue", "IfcVolumeMeasure", false),
	))
	add(def("IfcQuantityCount", "IfcPhysicalSimpleQuantity", false,
		a("CountValue", "IfcCountMeasure", false),
	))
	add(def("IfcQuantityWeight", "IfcPhysicalSimpleQuantity", false,
		a("WeightValue", "IfcMassMeasure", false),
	))
	add(def("IfcQuantityTime", "IfcPhysicalSimpleQuantity", false,
		a("TimeValue", "IfcTimeMeasure", false),
	))
	add(def("IfcPhysicalSimpleQuantity", "IfcPhysicalQuantity", true,
		a("Unit", "IfcNamedUnit", true),
	))

	// enums referenced by the registry
	r.enums["IFCUNITENUM"] = []string{"LENGTHUNIT", "AREAUNIT", "VOLUMEUNIT", "PLANEANGLEUNIT", "MASSUNIT", "TIMEUNIT"}
	r.enums["IFCSIPREFIX"] = []string{"EXA", "PETA", "TERA", "GIGA", "MEGA", "KILO", "HECTO", "DECA", "DECI", "CENTI", "MILLI", "MICRO", "NANO", "PICO", "FEMTO", "ATTO"}
	r.enums["IFCBOOLEANOPERATOR"] = []string{"UNION", "INTERSECTION", "DIFFERENCE"}

	return r
}
